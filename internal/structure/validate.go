package structure

import (
	"fmt"
	"strings"
)

// Validation is the outcome of checking a structure document against the
// depth the granularity registry expects. Message is human-readable and
// empty when OK.
type Validation struct {
	OK            bool
	Message       string
	ExpectedDepth int
	Depths        []int // actual depth of each top-level unit, in order
}

// Validate checks that the document parses and that every top-level unit
// resolves to expectedDepth levels. It never panics; malformed input yields
// a message instead.
func Validate(doc string, expectedDepth int) Validation {
	v := Validation{ExpectedDepth: expectedDepth}

	tops, ok := splitTopLevel(doc)
	if !ok {
		v.Message = "structure string is empty or has unbalanced brackets"
		return v
	}

	if _, ok := Parse(doc); !ok {
		v.Message = "structure string is malformed: expected units like [1/2/3] or [[1/2][3]]"
		return v
	}

	v.Depths = make([]int, len(tops))
	mismatch := false
	for i, top := range tops {
		v.Depths[i] = unitDepth(strings.TrimSpace(top))
		if v.Depths[i] != expectedDepth {
			mismatch = true
		}
	}
	if mismatch {
		v.Message = fmt.Sprintf("expected depth %d for every unit, found %s",
			expectedDepth, formatDepths(v.Depths))
		return v
	}

	v.OK = true
	return v
}

func formatDepths(depths []int) string {
	parts := make([]string, len(depths))
	for i, d := range depths {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
