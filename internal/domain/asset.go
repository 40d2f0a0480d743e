package domain

import (
	"fmt"
	"time"
)

// Path is one simulated price series, indexed 1:1 against a time grid.
type Path []float64

// PathSet holds every simulated path of one asset; index i is close_<i>.
// All paths share the same grid and therefore the same length.
type PathSet []Path

// Len returns the common path length, or 0 for an empty set.
func (ps PathSet) Len() int {
	if len(ps) == 0 {
		return 0
	}
	return len(ps[0])
}

// ColumnName returns the CSV/legend label for path index i.
func ColumnName(i int) string {
	return fmt.Sprintf("close_%d", i)
}

// AssetRecord pairs a generated symbol with its grid and simulated paths.
// Created per asset iteration, written out, then discarded.
type AssetRecord struct {
	Symbol string
	Dates  []time.Time
	Paths  PathSet
	Volume []int64 // optional; nil unless volume output is enabled
}

// Rows returns the number of data rows the record produces.
func (a *AssetRecord) Rows() int {
	return len(a.Dates)
}
