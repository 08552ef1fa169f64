package ranges

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/types"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		input string
		in    []int // 1-based
		out   []int // 1-based
	}{
		{"single_and_range", "3,5-8", []int{3, 5, 6, 7, 8}, []int{1, 2, 4, 9}},
		{"empty", "", nil, []int{1, 2, 3}},
		{"whitespace", " 2 , 4 - 5 ", []int{2, 4, 5}, []int{1, 3, 6}},
		{"malformed_token_ignored", "x,2", []int{2}, []int{1, 3}},
		{"malformed_bound", "2-y", nil, []int{1, 2, 3}},
		{"reversed", "6-4", []int{4, 5, 6}, []int{3, 7}},
		{"overlapping", "1-3,2-4", []int{1, 2, 3, 4}, []int{5}},
		{"trailing_comma", "1,", []int{1}, []int{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set := Parse(tc.input)
			for _, line := range tc.in {
				require.True(t, set.Contains(line-1), "line %d should be in range", line)
			}
			for _, line := range tc.out {
				require.False(t, set.Contains(line-1), "line %d should not be in range", line)
			}
		})
	}
}

func TestRanges(t *testing.T) {
	require.Equal(t,
		[]types.HighlightRange{{Start: 2, End: 2}, {Start: 4, End: 7}},
		Parse("3,5-8").Ranges(),
	)
	require.Equal(t,
		[]types.HighlightRange{{Start: 0, End: 0}},
		Parse("abc,1").Ranges(),
	)
	require.Empty(t, Parse("").Ranges())
	require.True(t, Parse("").Empty())
	require.False(t, Parse("nope").Empty())
}

func TestInRange(t *testing.T) {
	isIn := InRange("1")
	require.True(t, isIn(0))
	require.False(t, isIn(1))

	var zero Set
	require.False(t, zero.Contains(0))
}

func TestRow(t *testing.T) {
	tests := []struct {
		in   string
		want types.HighlightRange
		ok   bool
	}{
		{"2", types.HighlightRange{Start: 2, End: 2}, true},
		{" 2-4 ", types.HighlightRange{Start: 2, End: 4}, true},
		{"4-2", types.HighlightRange{Start: 2, End: 4}, true},
		{"", types.HighlightRange{}, false},
		{"a-4", types.HighlightRange{}, false},
		{"1,2", types.HighlightRange{}, false},
	}
	for _, tc := range tests {
		got, ok := Row(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}
