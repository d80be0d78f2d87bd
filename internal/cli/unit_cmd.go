package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Yotsura/mangaflow/internal/domain"
	"github.com/spf13/cobra"
)

func collectUnitIDs(units []domain.WorkUnit) []string {
	var ids []string
	for _, u := range units {
		ids = append(ids, u.UnitID())
		if b, ok := u.(*domain.Branch); ok {
			ids = append(ids, collectUnitIDs(b.Children)...)
		}
	}
	return ids
}

func newUnitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Edit a work's unit tree",
	}

	cmd.AddCommand(
		newUnitAddRootCmd(app),
		newUnitAddChildCmd(app),
		newUnitAdvanceCmd(app),
		newUnitSetCountCmd(app),
		newUnitRemoveCmd(app),
	)

	return cmd
}

// resolveUnitID matches a unit reference against the work's tree: exact ID
// first, then unique prefix.
func resolveUnitID(ctx context.Context, app *App, workID, input string) (string, error) {
	w, err := app.Works.GetByID(ctx, workID)
	if err != nil {
		return "", err
	}

	ids := collectUnitIDs(w.Units)
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if input != "" && strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unit not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("unit ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newUnitAddRootCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-root WORK",
		Short: "Append a top-level unit built from the default hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workID, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Works.AddRootUnit(ctx, workID); err != nil {
				return err
			}
			fmt.Printf("Added a top-level unit to %s\n", shortID(workID))
			return nil
		},
	}
}

func newUnitAddChildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-child WORK UNIT",
		Short: "Append one child to a branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workID, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, workID, args[1])
			if err != nil {
				return err
			}

			w, err := app.Works.GetByID(ctx, workID)
			if err != nil {
				return err
			}
			unit, ok := domain.FindUnit(w.Units, unitID)
			if !ok {
				return fmt.Errorf("unit not found: %q", unitID)
			}
			branch, ok := unit.(*domain.Branch)
			if !ok {
				return fmt.Errorf("unit %s is a leaf; resize its parent instead", shortID(unitID))
			}

			n := len(branch.Children) + 1
			if err := app.Works.SetChildCount(ctx, workID, unitID, n); err != nil {
				return err
			}
			fmt.Printf("Unit %s now has %d children\n", shortID(unitID), n)
			return nil
		},
	}
}

func newUnitAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance WORK UNIT",
		Short: "Advance a leaf to its next stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workID, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, workID, args[1])
			if err != nil {
				return err
			}
			if err := app.Works.AdvanceLeaf(ctx, workID, unitID); err != nil {
				return err
			}
			fmt.Printf("Advanced unit %s\n", shortID(unitID))
			return nil
		},
	}
}

func newUnitSetCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-count WORK UNIT N",
		Short: "Resize a branch to N children",
		Long: "Grows the branch with fresh unstarted leaves or truncates it " +
			"from the end. Sibling numbering is rebuilt afterwards.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workID, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, workID, args[1])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[2], err)
			}
			if err := app.Works.SetChildCount(ctx, workID, unitID, n); err != nil {
				return err
			}
			fmt.Printf("Unit %s now has %d children\n", shortID(unitID), n)
			return nil
		},
	}
}

func newUnitRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove WORK UNIT",
		Short: "Remove a unit and its subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			workID, err := resolveWorkID(ctx, app, args[0])
			if err != nil {
				return err
			}
			unitID, err := resolveUnitID(ctx, app, workID, args[1])
			if err != nil {
				return err
			}
			if err := app.Works.RemoveUnit(ctx, workID, unitID); err != nil {
				return err
			}
			fmt.Printf("Removed unit %s\n", shortID(unitID))
			return nil
		},
	}
}
