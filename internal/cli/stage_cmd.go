package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the default stage pipeline",
	}

	cmd.AddCommand(
		newStageListCmd(app),
		newStageAddCmd(app),
		newStageRemoveCmd(app),
		newStageHoursCmd(app),
	)

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the default stages in pipeline order",
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := app.Settings.Stages(context.Background())
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Println("No stages configured.")
				return nil
			}

			rows := make([][]string, 0, len(stages))
			for i, s := range stages {
				hours := formatter.Dim("unset")
				if s.BaseHours != nil {
					hours = formatter.FormatHours(*s.BaseHours)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(s.ID),
					formatter.StageStyle(s).Render(s.Label),
					hours,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"POS", "ID", "LABEL", "HOURS"}, rows))
			return nil
		},
	}
}

func newStageAddCmd(app *App) *cobra.Command {
	var label, color string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a stage to the default pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stages, err := app.Settings.Stages(ctx)
			if err != nil {
				return err
			}

			s := domain.Stage{ID: stages.NextID(), Label: label, Color: color}
			if cmd.Flags().Changed("hours") {
				s.BaseHours = &hours
			}
			stages = append(stages, s)

			if err := app.Settings.SaveStages(ctx, stages); err != nil {
				return err
			}
			fmt.Printf("Added stage %q (id %d)\n", s.Label, s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Stage label")
	cmd.Flags().StringVar(&color, "color", "", "Hex color for display, e.g. #fabd2f")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Cost at the finest granularity")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a stage from the default pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid stage id %q: %w", args[0], err)
			}

			stages, err := app.Settings.Stages(ctx)
			if err != nil {
				return err
			}
			kept := make(domain.StageTable, 0, len(stages))
			for _, s := range stages {
				if s.ID != id {
					kept = append(kept, s)
				}
			}
			if len(kept) == len(stages) {
				return fmt.Errorf("stage %d not found", id)
			}

			if err := app.Settings.SaveStages(ctx, kept); err != nil {
				return err
			}
			fmt.Printf("Removed stage %d\n", id)
			return nil
		},
	}
}

func newStageHoursCmd(app *App) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "hours ID HOURS",
		Short: "Set a stage's cost",
		Long: "Records how long one unit of work spends in a stage. With " +
			"--unit the value is entered at that granularity and converted " +
			"down to the finest one by weight before being stored.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid stage id %q: %w", args[0], err)
			}
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil || hours < 0 {
				return fmt.Errorf("invalid hours %q", args[1])
			}

			if err := app.Settings.SetStageHours(context.Background(), id, hours, unit); err != nil {
				return err
			}
			fmt.Printf("Stage %d costs %s\n", id, formatter.FormatHours(hours))
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "Granularity the hours are entered at (default: finest)")

	return cmd
}
