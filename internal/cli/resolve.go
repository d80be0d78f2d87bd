package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveWorkID turns a user-supplied reference into a work's full UUID.
// Accepted forms, in order: exact UUID, UUID prefix, case-insensitive title.
func resolveWorkID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("work ID is required")
	}

	works, err := app.Works.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, w := range works {
		if w.ID == input {
			return w.ID, nil
		}
	}

	var matches []string
	for _, w := range works {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}
	if len(matches) == 0 {
		for _, w := range works {
			if strings.EqualFold(w.Title, input) {
				matches = append(matches, w.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work reference %q is ambiguous (%d matches)", input, len(matches))
	}
}
