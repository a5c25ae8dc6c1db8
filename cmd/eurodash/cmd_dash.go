package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/eurodash/cmd/eurodash/tui"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	RunE:  runDash,
}

func runDash(cmd *cobra.Command, args []string) error {
	// TTY guard: print every chart once when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !term.IsTerminal(os.Stdin.Fd()) {
		return runFetch(cmd, fetchFlags{all: true})
	}

	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	model := tui.NewModel(tui.Options{
		Config:  cfg,
		Fetcher: client,
		Logger:  logger.Component("tui"),
	})
	defer model.Close()

	logger.Info("dashboard started", "base_url", cfg.BaseURL, "pages", len(cfg.Pages))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
