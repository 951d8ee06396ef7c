package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one text column, as wide as its widest cell.
type column struct {
	title string
	right bool
	width int
}

// textTable lays out rows for plain terminal output. Cells are separated by
// a single space and padded by display width, so wide runes stay aligned.
type textTable struct {
	cols []column
	rows [][]string
}

func newTextTable(titles ...string) *textTable {
	cols := make([]column, len(titles))
	for i, title := range titles {
		cols[i] = column{title: title, width: runewidth.StringWidth(title)}
	}
	return &textTable{cols: cols}
}

// alignRight right-aligns the columns at the given indexes.
func (t *textTable) alignRight(idx ...int) *textTable {
	for _, i := range idx {
		if i >= 0 && i < len(t.cols) {
			t.cols[i].right = true
		}
	}
	return t
}

// add appends a row. Missing cells render blank; extra cells are dropped.
func (t *textTable) add(cells []string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	for i, cell := range row {
		t.cols[i].width = max(t.cols[i].width, runewidth.StringWidth(cell))
	}
	t.rows = append(t.rows, row)
}

func (t *textTable) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	titles := make([]string, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.render(titles))
	for _, row := range t.rows {
		out = append(out, t.render(row))
	}
	return out
}

func (t *textTable) render(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.cols[i].right {
			parts[i] = runewidth.FillLeft(cell, t.cols[i].width)
		} else {
			parts[i] = runewidth.FillRight(cell, t.cols[i].width)
		}
	}
	return strings.Join(parts, " ")
}
