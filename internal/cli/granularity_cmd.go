package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/spf13/cobra"
)

func newGranularityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "granularity",
		Aliases: []string{"gran"},
		Short:   "Manage the default granularity registry",
		Long: "The registry defines the unit hierarchy, coarsest first. Each " +
			"level carries a weight relative to the finest level; stage costs " +
			"scale between levels by the weight ratio.",
	}

	cmd.AddCommand(
		newGranularityListCmd(app),
		newGranularityAddCmd(app),
		newGranularityUpdateCmd(app),
		newGranularityRemoveCmd(app),
	)

	return cmd
}

func newGranularityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List granularity levels, coarsest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Settings.Granularities(context.Background())
			if err != nil {
				return err
			}
			if len(reg) == 0 {
				fmt.Println("No granularities configured.")
				return nil
			}

			rows := make([][]string, 0, len(reg))
			for _, g := range reg {
				rows = append(rows, []string{
					g.ID,
					g.Label,
					strconv.Itoa(g.Weight),
					strconv.Itoa(g.DefaultCount),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "LABEL", "WEIGHT", "COUNT"}, rows))
			return nil
		},
	}
}

func newGranularityAddCmd(app *App) *cobra.Command {
	var id, label string
	var weight, count int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a level below the current finest one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reg, err := app.Settings.Granularities(ctx)
			if err != nil {
				return err
			}
			reg = append(reg, domain.Granularity{
				ID: id, Label: label, Weight: weight, DefaultCount: count,
			})
			if err := app.Settings.SaveGranularities(ctx, reg); err != nil {
				return err
			}
			fmt.Printf("Added granularity %q\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Level identifier, e.g. panel")
	cmd.Flags().StringVar(&label, "label", "", "Display label")
	cmd.Flags().IntVar(&weight, "weight", 1, "Weight relative to the finest level")
	cmd.Flags().IntVar(&count, "count", 1, "Default child count for new units")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newGranularityUpdateCmd(app *App) *cobra.Command {
	var label string
	var weight, count int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a level's label, weight or default count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reg, err := app.Settings.Granularities(ctx)
			if err != nil {
				return err
			}

			found := false
			for i := range reg {
				if reg[i].ID != args[0] {
					continue
				}
				found = true
				if cmd.Flags().Changed("label") {
					reg[i].Label = label
				}
				if cmd.Flags().Changed("weight") {
					reg[i].Weight = weight
				}
				if cmd.Flags().Changed("count") {
					reg[i].DefaultCount = count
				}
			}
			if !found {
				return fmt.Errorf("granularity %q not found", args[0])
			}

			if err := app.Settings.SaveGranularities(ctx, reg); err != nil {
				return err
			}
			fmt.Printf("Updated granularity %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Display label")
	cmd.Flags().IntVar(&weight, "weight", 0, "Weight relative to the finest level")
	cmd.Flags().IntVar(&count, "count", 0, "Default child count for new units")

	return cmd
}

func newGranularityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a level from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reg, err := app.Settings.Granularities(ctx)
			if err != nil {
				return err
			}
			kept := make(domain.Registry, 0, len(reg))
			for _, g := range reg {
				if g.ID != args[0] {
					kept = append(kept, g)
				}
			}
			if len(kept) == len(reg) {
				return fmt.Errorf("granularity %q not found", args[0])
			}
			if err := app.Settings.SaveGranularities(ctx, kept); err != nil {
				return err
			}
			fmt.Printf("Removed granularity %q\n", args[0])
			return nil
		},
	}
}
