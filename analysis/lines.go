package analysis

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// lineIndex maps byte offsets to 1-based lines and display columns.
type lineIndex struct {
	text     string
	starts   []int
	tabWidth int
}

func newLineIndex(text string, tabWidth int) lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return lineIndex{text: text, starts: starts, tabWidth: tabWidth}
}

// LineColumn converts an offset to a 1-based line and a 1-based display
// column. Offsets outside the text are clamped.
func (li lineIndex) LineColumn(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}

	idx := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1

	return idx + 1, displayWidth(li.text[li.starts[idx]:offset], li.tabWidth) + 1
}

// lineStart returns the offset of the first byte of a 1-based line, or the
// text length when the line is past the end.
func (li lineIndex) lineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(li.starts) {
		return len(li.text)
	}
	return li.starts[line-1]
}

func (li lineIndex) offset(line, column int) int {
	start := li.lineStart(line)
	end := len(li.text)
	if line >= 1 && line < len(li.starts) {
		end = li.starts[line] - 1
	}

	w := 0
	for i, r := range li.text[start:end] {
		if w+1 >= column {
			return start + i
		}
		if r == '\t' {
			w += li.tabWidth - w%li.tabWidth
		} else {
			w += runewidth.RuneWidth(r)
		}
		if w+1 > column {
			return start + i
		}
	}
	return end
}

func (li lineIndex) count() int {
	return len(li.starts)
}

// displayWidth measures s in monospace cells, expanding tabs to tab stops.
func displayWidth(s string, tabWidth int) int {
	if !strings.ContainsRune(s, '\t') {
		return runewidth.StringWidth(s)
	}
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth - w%tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
