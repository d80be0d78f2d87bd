package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage works",
	}

	cmd.AddCommand(
		newWorkNewCmd(app),
		newWorkListCmd(app),
		newWorkInspectCmd(app),
		newWorkRenameCmd(app),
		newWorkDeadlineCmd(app),
		newWorkCompleteCmd(app),
		newWorkReopenCmd(app),
		newWorkArchiveCmd(app),
		newWorkDeleteCmd(app),
	)

	return cmd
}

func parseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline %q: %w", s, err)
	}
	return &d, nil
}

func newWorkNewCmd(app *App) *cobra.Command {
	var title, deadline, structure string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new work",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No --title on a terminal: offer the interactive form.
			if title == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := newWorkForm(&title, &deadline, &structure).Run(); err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			due, err := parseDeadline(deadline)
			if err != nil {
				return err
			}

			w, err := app.Works.Create(context.Background(), title, due, structure)
			if err != nil {
				return err
			}

			fmt.Printf("Created work %s (%s, %d leaves)\n", w.Title, shortID(w.ID), w.LeafCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Work title")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&structure, "structure", "", "Structure string, e.g. [1/1/1],[1/1]")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newWorkListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List works",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			works, err := app.Works.List(ctx, all)
			if err != nil {
				return err
			}
			if len(works) == 0 {
				fmt.Println("No works found.")
				return nil
			}

			rows := make([][]string, 0, len(works))
			for _, w := range works {
				progress := formatter.Dim("-")
				if rep, err := app.Progress.Report(ctx, w.ID); err == nil {
					progress = formatter.RenderProgress(float64(rep.Summary.Percent)/100, 10)
				}
				deadline := formatter.Dim("none")
				if w.Deadline != nil {
					deadline = w.Deadline.Format("2006-01-02")
				}
				rows = append(rows, []string{
					shortID(w.ID),
					w.Title,
					formatter.StatusIndicator(w.Status),
					deadline,
					progress,
				})
			}

			fmt.Print(formatter.RenderTable(
				[]string{"ID", "TITLE", "STATUS", "DEADLINE", "PROGRESS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived works")

	return cmd
}

func newWorkInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect WORK",
		Short: "Show work details and its unit tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Works.GetByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(w.Title))
			fmt.Printf("ID:       %s\n", w.ID)
			fmt.Printf("Status:   %s\n", formatter.StatusIndicator(w.Status))
			if w.Deadline != nil {
				fmt.Printf("Deadline: %s\n", w.Deadline.Format("2006-01-02"))
			}
			fmt.Printf("Leaves:   %d\n", w.LeafCount())

			if len(w.Units) > 0 {
				fmt.Println()
				fmt.Println(formatter.RenderUnitTree(w.Units, w.Stages, w.Granularities))
			}
			return nil
		},
	}
}

func newWorkRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename WORK TITLE",
		Short: "Rename a work",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Works.Rename(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %q\n", shortID(id), args[1])
			return nil
		},
	}
}

func newWorkDeadlineCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "deadline WORK [DATE]",
		Short: "Set or clear a work's deadline",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if clear {
				if err := app.Works.SetDeadline(ctx, id, nil); err != nil {
					return err
				}
				fmt.Printf("Cleared deadline for %s\n", shortID(id))
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("a date or --clear is required")
			}
			due, err := parseDeadline(args[1])
			if err != nil {
				return err
			}
			if err := app.Works.SetDeadline(ctx, id, due); err != nil {
				return err
			}
			fmt.Printf("Deadline for %s set to %s\n", shortID(id), args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the deadline")

	return cmd
}

func newWorkCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete WORK",
		Short: "Mark a work as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Works.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Completed %s\n", shortID(id))
			return nil
		},
	}
}

func newWorkReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen WORK",
		Short: "Put a completed work back in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Works.Reopen(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Reopened %s\n", shortID(id))
			return nil
		},
	}
}

func newWorkArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive WORK",
		Short: "Archive a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Works.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Archived %s\n", shortID(id))
			return nil
		},
	}
}

func newWorkDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete WORK",
		Short: "Delete a work and all its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("deleting removes the work, its units and snapshots; re-run with --force")
			}
			if err := app.Works.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")

	return cmd
}
