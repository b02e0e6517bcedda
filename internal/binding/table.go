package binding

import (
	"iter"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Table is the resolved value space of a task variation: an ordered list of
// variables and a restartable sequence of rows, each row holding one value
// per variable.
type Table struct {
	ID        nodeid.ID
	Task      nodeid.ID
	Variables []nodeid.ID
	Rows      iter.Seq[[]Value]
	Count     int
}

// Maps yields one Map per row.
func (t *Table) Maps() iter.Seq[Map] {
	return func(yield func(Map) bool) {
		for row := range t.Rows {
			if !yield(NewMap(t.Variables, row)) {
				return
			}
		}
	}
}
