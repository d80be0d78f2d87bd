package workload

import (
	"math"
	"time"
)

// Pace describes the effort rate a deadline demands.
type Pace struct {
	DaysLeft       int
	RequiredPerDay float64 // +Inf when the deadline passed with work left
	HasDeadline    bool
}

// RequiredPace computes the hours per day needed to finish the remaining
// work by the deadline. A nil deadline yields no pace; a passed deadline
// with work remaining yields an infinite pace — the intentional sentinel
// for "impossible under current settings", not an error.
func RequiredPace(remainingHours float64, now time.Time, deadline *time.Time) Pace {
	if deadline == nil {
		return Pace{}
	}
	daysLeft := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	p := Pace{DaysLeft: daysLeft, HasDeadline: true}
	if remainingHours <= 0 {
		return p
	}
	if daysLeft <= 0 {
		p.RequiredPerDay = math.Inf(1)
		return p
	}
	p.RequiredPerDay = remainingHours / float64(daysLeft)
	return p
}
