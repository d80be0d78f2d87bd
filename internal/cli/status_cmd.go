package cli

import (
	"context"
	"fmt"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/Yotsura/mangaflow/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "status WORK",
		Short: "Show a work's progress report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rep, err := app.Progress.Report(ctx, id)
			if err != nil {
				return err
			}
			printReport(rep, tree)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Include the unit tree")

	return cmd
}

func printReport(rep *service.Report, withTree bool) {
	w := rep.Work
	s := rep.Summary

	fmt.Println(formatter.Header(w.Title))
	fmt.Printf("Status:    %s\n", formatter.StatusIndicator(w.Status))
	fmt.Printf("Progress:  %s\n", formatter.RenderProgress(float64(s.Percent)/100, 20))
	fmt.Printf("Hours:     %s done, %s left of %s\n",
		formatter.FormatHours(s.CompletedHours),
		formatter.FormatHours(s.RemainingHours),
		formatter.FormatHours(s.TotalHours))
	fmt.Printf("Leaves:    %d\n", s.LeafCount)

	if rep.Pace.HasDeadline {
		fmt.Printf("Deadline:  %s (%d days left, %s/day needed)\n",
			w.Deadline.Format("2006-01-02"),
			rep.Pace.DaysLeft,
			formatter.FormatHours(rep.Pace.RequiredPerDay))
	}

	if len(rep.HoursPerGranularity) > 0 {
		fmt.Println()
		fmt.Println(formatter.Dim("Per unit:"))
		for _, g := range w.Granularities {
			if h, ok := rep.HoursPerGranularity[g.ID]; ok {
				fmt.Printf("  %-10s %s\n", g.Label, formatter.FormatHours(h))
			}
		}
	}

	if withTree && len(w.Units) > 0 {
		fmt.Println()
		fmt.Println(formatter.RenderUnitTree(w.Units, w.Stages, w.Granularities))
	}
}
