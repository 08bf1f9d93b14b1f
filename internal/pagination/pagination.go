// Package pagination reveals filtered list entries in fixed pages,
// independent of the map window.
package pagination

import "github.com/JeromeFabre77/SpotWork/internal/core/model"

const DefaultPageSize = 12

// State is a value; operations return the updated state.
type State struct {
	RevealedCount int
	PageSize      int
}

func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{RevealedCount: pageSize, PageSize: pageSize}
}

// VisiblePage returns the revealed prefix of the filtered list. The
// prefix clamps to the list length, so an oversized reveal count is
// not an error.
func VisiblePage(filtered []model.Point, s State) []model.Point {
	n := min(s.RevealedCount, len(filtered))
	if n <= 0 {
		return nil
	}
	return filtered[:n]
}

// LoadMore reveals one more page.
func LoadMore(s State) State {
	s.RevealedCount += s.PageSize
	return s
}

// ResetOnFilterChange drops back to a single page. Must run on every
// criteria change so the list never keeps stale reveal depth.
func ResetOnFilterChange(s State) State {
	s.RevealedCount = s.PageSize
	return s
}
