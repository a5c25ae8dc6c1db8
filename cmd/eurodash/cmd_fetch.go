package main

import (
	"errors"

	"github.com/ruminaider/eurodash/internal/commands"
	"github.com/spf13/cobra"
)

type fetchFlags struct {
	ids     []string
	all     bool
	filters []string
	json    bool
}

var fetchOpts fetchFlags

var fetchCmd = &cobra.Command{
	Use:   "fetch [chart-id...]",
	Short: "Fetch charts once and print their data",
	Long: `Fetch one or more charts and print each as a table.

Filters are key=value pairs; repeat a key to select several values:

  eurodash fetch q1c3 --filter geo=BE --filter geo=DE --filter time=2020`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fetchOpts
		opts.ids = args
		return runFetch(cmd, opts)
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchOpts.all, "all", false, "fetch every configured chart")
	fetchCmd.Flags().StringArrayVarP(&fetchOpts.filters, "filter", "f", nil, "filter as key=value (repeatable)")
	fetchCmd.Flags().BoolVar(&fetchOpts.json, "json", false, "print JSON instead of tables")
}

func runFetch(cmd *cobra.Command, opts fetchFlags) error {
	if len(opts.ids) == 0 && !opts.all {
		return errors.New("name one or more chart ids, or pass --all")
	}
	if opts.all {
		opts.ids = nil
	}

	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	results, err := commands.Fetch(cmd.Context(), cfg, client, commands.FetchOptions{
		IDs:     opts.ids,
		Filters: opts.filters,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return commands.WriteJSON(out, results)
	}
	return commands.WriteTable(out, results)
}
