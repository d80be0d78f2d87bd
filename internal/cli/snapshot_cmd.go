package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Yotsura/mangaflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and replay progress snapshots",
	}

	cmd.AddCommand(
		newSnapshotTakeCmd(app),
		newSnapshotListCmd(app),
		newSnapshotShowCmd(app),
		newSnapshotDeleteCmd(app),
	)

	return cmd
}

func newSnapshotTakeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "take WORK",
		Short: "Record the current per-stage leaf counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Progress.TakeSnapshot(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Snapshot %s taken at %s\n", shortID(snap.ID), snap.TakenAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newSnapshotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list WORK",
		Short: "List a work's snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			snaps, err := app.Progress.ListSnapshots(ctx, id)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots yet.")
				return nil
			}

			rows := make([][]string, 0, len(snaps))
			for _, s := range snaps {
				leaves := 0
				for _, c := range s.Counts {
					leaves += c.Count
				}
				rows = append(rows, []string{
					s.ID,
					s.TakenAt.Format("2006-01-02 15:04"),
					strconv.Itoa(leaves),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "TAKEN", "LEAVES"}, rows))
			return nil
		},
	}
}

func newSnapshotDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SNAPSHOT",
		Short: "Discard a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.DeleteSnapshot(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted snapshot %s\n", shortID(args[0]))
			return nil
		},
	}
}

func newSnapshotShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SNAPSHOT",
		Short: "Replay a snapshot against the work's current stage costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app.Progress.SnapshotReport(context.Background(), args[0])
			if err != nil {
				return err
			}
			printReport(rep, false)
			return nil
		},
	}
}
