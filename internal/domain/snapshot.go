package domain

import "time"

// StageCount records how many leaves sat at the stage with the given stable
// id at some point in time.
type StageCount struct {
	StageID int
	Count   int
}

// Snapshot is a point-in-time progress record for one work, kept as
// counts-per-stage so history survives later edits to the unit forest.
type Snapshot struct {
	ID      string
	WorkID  string
	TakenAt time.Time
	Counts  []StageCount
}
