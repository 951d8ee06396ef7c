// Package nav computes focus movement over a grid of selectable items.
package nav

import (
	"fmt"
	"strings"
)

// Direction is a focus movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps arrow key names and vim keys to a Direction.
func ParseDirection(key string) (Direction, bool) {
	switch strings.ToLower(key) {
	case "up", "k":
		return Up, true
	case "down", "j":
		return Down, true
	case "left", "h":
		return Left, true
	case "right", "l":
		return Right, true
	default:
		return 0, false
	}
}

// Transition overrides column clamping when moving from row From to the
// adjacent row To. Columns[i] is the destination column for source column i.
type Transition struct {
	From    int
	To      int
	Columns []int
}

// Grid is an immutable layout of item ids. Rows may differ in length.
type Grid struct {
	rows        [][]string
	transitions map[[2]int][]int
	index       map[string][2]int
}

// NewGrid validates rows and transitions. Every id must be non-empty and
// appear exactly once.
func NewGrid(rows [][]string, transitions ...Transition) (Grid, error) {
	g := Grid{
		rows:        make([][]string, len(rows)),
		transitions: map[[2]int][]int{},
		index:       map[string][2]int{},
	}
	for r, row := range rows {
		if len(row) == 0 {
			return Grid{}, fmt.Errorf("row %d is empty", r)
		}
		g.rows[r] = append([]string(nil), row...)
		for c, id := range row {
			if id == "" {
				return Grid{}, fmt.Errorf("row %d column %d has an empty id", r, c)
			}
			if prev, ok := g.index[id]; ok {
				return Grid{}, fmt.Errorf("id %q appears at (%d,%d) and (%d,%d)", id, prev[0], prev[1], r, c)
			}
			g.index[id] = [2]int{r, c}
		}
	}
	for _, tr := range transitions {
		if tr.From < 0 || tr.From >= len(rows) || tr.To < 0 || tr.To >= len(rows) {
			return Grid{}, fmt.Errorf("transition %d->%d is out of range", tr.From, tr.To)
		}
		if tr.To-tr.From != 1 && tr.From-tr.To != 1 {
			return Grid{}, fmt.Errorf("transition %d->%d is not between adjacent rows", tr.From, tr.To)
		}
		if len(tr.Columns) != len(rows[tr.From]) {
			return Grid{}, fmt.Errorf("transition %d->%d maps %d columns, row has %d", tr.From, tr.To, len(tr.Columns), len(rows[tr.From]))
		}
		for _, col := range tr.Columns {
			if col < 0 || col >= len(rows[tr.To]) {
				return Grid{}, fmt.Errorf("transition %d->%d targets column %d outside row", tr.From, tr.To, col)
			}
		}
		g.transitions[[2]int{tr.From, tr.To}] = append([]int(nil), tr.Columns...)
	}
	return g, nil
}

// MustGrid is NewGrid for static layouts; it panics on an invalid layout.
func MustGrid(rows [][]string, transitions ...Transition) Grid {
	g, err := NewGrid(rows, transitions...)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns a copy of the layout.
func (g Grid) Rows() [][]string {
	out := make([][]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Position locates id in the grid.
func (g Grid) Position(id string) (row, col int, ok bool) {
	pos, ok := g.index[id]
	return pos[0], pos[1], ok
}

// First returns the top-left id, or "" for an empty grid.
func (g Grid) First() string {
	if len(g.rows) == 0 {
		return ""
	}
	return g.rows[0][0]
}

// Next returns the id focused after moving from current in direction d.
// Illegal moves and unknown ids leave focus where it is.
func Next(g Grid, current string, d Direction) string {
	row, col, ok := g.Position(current)
	if !ok {
		return current
	}
	switch d {
	case Left:
		if col > 0 {
			return g.rows[row][col-1]
		}
	case Right:
		if col < len(g.rows[row])-1 {
			return g.rows[row][col+1]
		}
	case Down:
		if row < len(g.rows)-1 {
			return g.rows[row+1][g.column(row, row+1, col)]
		}
	case Up:
		if row > 0 {
			return g.rows[row-1][g.column(row, row-1, col)]
		}
	}
	return current
}

func (g Grid) column(from, to, col int) int {
	if mapping, ok := g.transitions[[2]int{from, to}]; ok {
		return mapping[col]
	}
	return min(col, len(g.rows[to])-1)
}
