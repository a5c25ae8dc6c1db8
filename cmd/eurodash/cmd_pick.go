package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/eurodash/internal/commands"
	"github.com/ruminaider/eurodash/internal/config"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick <chart-id>",
	Short: "Choose a chart's filters in a form, then print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, client, err := setup()
		if err != nil {
			return err
		}
		defer logger.Close()

		ch, err := cfg.Chart(args[0])
		if err != nil {
			return err
		}

		// The unfiltered fetch tells us which filters the chart offers.
		first := commands.FetchOne(cmd.Context(), client, ch, nil)
		if first.Schema == nil {
			if first.Err != nil {
				return first.Err
			}
			return fmt.Errorf("chart %s offers no filters", ch.ID)
		}

		groups := commands.PickGroups(first.Schema)
		picks, err := promptFilters(ch, groups)
		if err != nil {
			return err
		}

		sel := commands.SelectionFromPicks(first.Schema, picks)
		logger.Info("picked filters", "chart_id", ch.ID, "query", sel.Query().Encode())
		result := commands.FetchOne(cmd.Context(), client, ch, sel)
		return commands.WriteTable(cmd.OutOrStdout(), []commands.ChartResult{result})
	},
}

// promptFilters runs one form with a select per single-choice group and a
// multi-select per multi-choice group.
func promptFilters(ch config.Chart, groups []commands.PickGroup) (map[string][]string, error) {
	single := make(map[string]*string)
	multi := make(map[string]*[]string)

	var fields []huh.Field
	for _, g := range groups {
		if g.Multiple {
			chosen := append([]string(nil), g.Selected...)
			multi[g.Key] = &chosen
			var options []huh.Option[string]
			for _, o := range g.Options {
				options = append(options, huh.NewOption(o.Label, o.Value.String()))
			}
			fields = append(fields, huh.NewMultiSelect[string]().
				Title(g.Key).
				Description("Space to toggle, nothing selected means all").
				Options(options...).
				Value(&chosen))
			continue
		}

		chosen := ""
		if len(g.Selected) > 0 {
			chosen = g.Selected[0]
		}
		single[g.Key] = &chosen
		options := []huh.Option[string]{huh.NewOption("All", "")}
		for _, o := range g.Options {
			options = append(options, huh.NewOption(o.Label, o.Value.String()))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title(g.Key).
			Options(options...).
			Value(&chosen))
	}

	fmt.Printf("%s (%s)\n", ch.Title, ch.ID)
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, err
	}

	picks := make(map[string][]string, len(groups))
	for key, v := range single {
		if *v != "" {
			picks[key] = []string{*v}
		}
	}
	for key, v := range multi {
		picks[key] = *v
	}
	return picks, nil
}
