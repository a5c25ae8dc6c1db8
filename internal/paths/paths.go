package paths

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the eurodash data directory.
const EnvHome = "EURODASH_HOME"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// DataDir returns $EURODASH_HOME, or ~/.eurodash when unset.
func DataDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	return filepath.Join(home(), ".eurodash")
}

// ConfigFile returns ~/.eurodash/config.yaml.
func ConfigFile() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// LogFile returns ~/.eurodash/eurodash.log.
func LogFile() string {
	return filepath.Join(DataDir(), "eurodash.log")
}
