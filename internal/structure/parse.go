// Package structure implements the textual structure-string notation for a
// work-unit forest: top-level units separated by commas, nesting with square
// brackets, leaf stage lists separated by slashes. Stage numbers are 1-based
// in text ("1" = not started) and 0-based inside the engine.
package structure

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsedUnit is the shape data recovered for one top-level unit: one entry
// per sub-unit group, each holding that group's leaf stage indices (0-based)
// in document order. A single group means the top unit owns its leaves
// directly; several groups mean one intermediate branch per group.
type ParsedUnit struct {
	Groups [][]int
}

// LeafStages returns the unit's leaf stage indices across all groups.
func (p ParsedUnit) LeafStages() []int {
	var stages []int
	for _, g := range p.Groups {
		stages = append(stages, g...)
	}
	return stages
}

// Parse interprets a structure document. ok is false for malformed input
// (unbalanced brackets, bad stage tokens, empty units); parsing never
// panics and reports no partial result.
func Parse(doc string) ([]ParsedUnit, bool) {
	tops, ok := splitTopLevel(doc)
	if !ok {
		return nil, false
	}
	units := make([]ParsedUnit, 0, len(tops))
	for _, top := range tops {
		body, ok := stripOuterBrackets(top)
		if !ok {
			return nil, false
		}
		groups, ok := parseBody(body)
		if !ok {
			return nil, false
		}
		units = append(units, ParsedUnit{Groups: groups})
	}
	return units, true
}

// splitTopLevel splits the document on commas at bracket depth 0. Fails on
// unbalanced brackets or an effectively empty document.
func splitTopLevel(doc string) ([]string, bool) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil, false
	}
	var parts []string
	depth := 0
	start := 0
	for i, r := range doc {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				parts = append(parts, doc[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	parts = append(parts, doc[start:])
	return parts, true
}

// stripOuterBrackets removes the single outer bracket pair of a top unit,
// verifying that the opening bracket closes at the very end.
func stripOuterBrackets(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false // outer bracket closed early: not a single unit
			}
		}
	}
	return s[1 : len(s)-1], true
}

// parseBody interprets a top unit's body as either a pure leaf list (one
// group) or a sequence of bracket groups, each flattened to its leaf stage
// sequence.
func parseBody(body string) ([][]int, bool) {
	if isLeafList(body) {
		stages, ok := parseLeafList(body)
		if !ok {
			return nil, false
		}
		return [][]int{stages}, true
	}
	inner, ok := splitBracketGroups(body)
	if !ok {
		return nil, false
	}
	groups := make([][]int, 0, len(inner))
	for _, g := range inner {
		leaves, ok := flattenLeaves(g)
		if !ok {
			return nil, false
		}
		groups = append(groups, leaves)
	}
	return groups, true
}

// flattenLeaves concatenates the leaf stage sequence of a body, recursing
// through any nesting.
func flattenLeaves(body string) ([]int, bool) {
	if isLeafList(body) {
		return parseLeafList(body)
	}
	inner, ok := splitBracketGroups(body)
	if !ok {
		return nil, false
	}
	var leaves []int
	for _, g := range inner {
		l, ok := flattenLeaves(g)
		if !ok {
			return nil, false
		}
		leaves = append(leaves, l...)
	}
	return leaves, true
}

// splitBracketGroups splits a body consisting solely of consecutive
// balanced [...] groups, returning each group's inner text.
func splitBracketGroups(body string) ([]string, bool) {
	var groups []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, false
			}
			if depth == 0 {
				groups = append(groups, body[start:i])
			}
		default:
			if depth == 0 && !unicode.IsSpace(rune(body[i])) {
				return nil, false // stray text between groups
			}
		}
	}
	if depth != 0 || len(groups) == 0 {
		return nil, false
	}
	return groups, true
}

// isLeafList reports whether the body contains only stage tokens: digits,
// slashes and whitespace.
func isLeafList(body string) bool {
	for _, r := range body {
		if r != '/' && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// parseLeafList converts "1/2/3" into 0-based stage indices. Tokens are
// 1-based as typed; "0" clamps to stage 0 rather than failing.
func parseLeafList(body string) ([]int, bool) {
	tokens := strings.Split(body, "/")
	stages := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, false
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, false
		}
		if n > 0 {
			n--
		}
		stages = append(stages, n)
	}
	return stages, true
}

// unitDepth is the depth a top unit declares: maximum bracket nesting of the
// full unit text plus the implicit leaf level.
func unitDepth(top string) int {
	depth, max := 0, 0
	for _, r := range top {
		switch r {
		case '[':
			depth++
			if depth > max {
				max = depth
			}
		case ']':
			depth--
		}
	}
	return max + 1
}
