// Package ranges parses comma-separated line range strings such as "3,5-8".
package ranges

import (
	"math"
	"strconv"
	"strings"

	"github.com/arjunmahishi/codeview/types"
)

// span holds one parsed token. Bounds are NaN when the token was malformed.
type span struct {
	start float64
	end   float64
}

func (s span) valid() bool {
	return !math.IsNaN(s.start) && !math.IsNaN(s.end)
}

// Set is a parsed range string. The zero value matches nothing.
type Set struct {
	spans []span
}

// Parse parses a range string. Each comma-separated token is either N or
// N-M, 1-based and inclusive. Malformed tokens are kept but never match.
func Parse(s string) Set {
	if strings.TrimSpace(s) == "" {
		return Set{}
	}

	var set Set
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		set.spans = append(set.spans, parseToken(tok))
	}
	return set
}

func parseToken(tok string) span {
	from, to, isRange := strings.Cut(tok, "-")
	start := parseNumber(from)
	if !isRange {
		return span{start: start, end: start}
	}
	end := parseNumber(to)
	if end < start {
		start, end = end, start
	}
	return span{start: start, end: end}
}

func parseNumber(s string) float64 {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

// Contains reports whether the zero-based line index falls inside any range.
func (s Set) Contains(line int) bool {
	n := float64(line + 1)
	for _, sp := range s.spans {
		// NaN comparisons are always false, so malformed spans never match.
		if sp.start <= n && n <= sp.end {
			return true
		}
	}
	return false
}

// Ranges returns the well-formed ranges converted to zero-based indices, in
// input order. Overlapping ranges are returned independently.
func (s Set) Ranges() []types.HighlightRange {
	out := make([]types.HighlightRange, 0, len(s.spans))
	for _, sp := range s.spans {
		if !sp.valid() {
			continue
		}
		out = append(out, types.HighlightRange{
			Start: int(sp.start) - 1,
			End:   int(sp.end) - 1,
		})
	}
	return out
}

// Empty reports whether the set has no tokens at all.
func (s Set) Empty() bool {
	return len(s.spans) == 0
}

// InRange is a convenience predicate for a single range string.
func InRange(s string) func(line int) bool {
	set := Parse(s)
	return set.Contains
}

// Row parses a single active-row interval, "N" or "N-M", 1-based and
// inclusive. ok is false when s is empty or malformed.
func Row(s string) (r types.HighlightRange, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ",") {
		return types.HighlightRange{}, false
	}
	sp := parseToken(s)
	if !sp.valid() {
		return types.HighlightRange{}, false
	}
	return types.HighlightRange{Start: int(sp.start), End: int(sp.end)}, true
}
