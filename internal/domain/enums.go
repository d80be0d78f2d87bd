package domain

type WorkStatus string

const (
	WorkInProgress WorkStatus = "in_progress"
	WorkCompleted  WorkStatus = "completed"
	WorkArchived   WorkStatus = "archived"
)

// ValidWorkStatuses is the canonical set of accepted work status strings.
var ValidWorkStatuses = map[string]bool{
	"in_progress": true, "completed": true, "archived": true,
}

// DefaultScope is the reserved work id under which the default stage table
// and granularity registry are persisted. New works are seeded from it.
const DefaultScope = ""
