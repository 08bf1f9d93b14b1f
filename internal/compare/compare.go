// Package compare maintains the bounded comparison selection and
// scores points with a deterministic desirability heuristic.
package compare

import (
	"errors"
	"strings"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

const MaxSelection = 4

var (
	// ErrSelectionLimit rejects a toggle that would exceed the bound;
	// callers must leave state unchanged and surface a notice.
	ErrSelectionLimit = errors.New("selection limit reached")

	// ErrInsufficientSelection means fewer than two points are
	// selected, so no recommendation can be made.
	ErrInsufficientSelection = errors.New("insufficient selection")
)

// Selection is the ordered comparison set: unique by point ID,
// insertion order preserved for display, at most MaxSelection entries.
type Selection struct {
	points []model.Point
}

// Toggle adds the point if absent and removes it if present. The
// returned bool reports whether the point is selected afterwards.
// Adding beyond the bound returns ErrSelectionLimit with the set
// untouched; removing an absent point is a no-op.
func (s *Selection) Toggle(p model.Point) (bool, error) {
	for i, q := range s.points {
		if q.ID == p.ID {
			s.points = append(s.points[:i], s.points[i+1:]...)
			return false, nil
		}
	}
	if len(s.points) >= MaxSelection {
		return false, ErrSelectionLimit
	}
	s.points = append(s.points, p)
	return true, nil
}

func (s *Selection) Contains(id string) bool {
	for _, q := range s.points {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Points returns the selection in insertion order. Callers must not
// modify the returned slice.
func (s *Selection) Points() []model.Point {
	return s.points
}

func (s *Selection) Len() int {
	return len(s.points)
}

func (s *Selection) Clear() {
	s.points = nil
}

// Score computes the additive desirability heuristic, capped to
// [0,100]. Pure function of the point's attributes: free wifi +20 or
// any wifi +10 (free supersedes), full wheelchair access +15 or
// partial +8, air conditioning +10, indoor seating +10, outdoor
// seating +10, public operator +5, non-smoking declared +10,
// published hours +5, a contact channel +5.
func Score(p model.Point) int {
	score := 0

	switch {
	case p.WifiFree():
		score += 20
	case p.HasWifi():
		score += 10
	}

	switch strings.ToLower(strings.TrimSpace(p.Attr(model.AttrWheelchair))) {
	case "yes", "accessible", "designated":
		score += 15
	case "limited", "partial":
		score += 8
	}

	if attrTrue(p, model.AttrAirCon) {
		score += 10
	}
	if attrTrue(p, model.AttrIndoorSeating) {
		score += 10
	}
	if attrTrue(p, model.AttrOutdoorSeating) {
		score += 10
	}

	switch strings.ToLower(strings.TrimSpace(p.Attr(model.AttrOperatorType))) {
	case "public", "government":
		score += 5
	}

	if strings.EqualFold(strings.TrimSpace(p.Attr(model.AttrSmoking)), "no") {
		score += 10
	}

	if p.Attr(model.AttrHours) != "" {
		score += 5
	}
	if p.Attr(model.AttrPhone) != "" || p.Attr(model.AttrEmail) != "" {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func attrTrue(p model.Point, key string) bool {
	switch strings.ToLower(strings.TrimSpace(p.Attr(key))) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// Entry pairs a selected point with its score.
type Entry struct {
	Point model.Point
	Score int
}

// Result is the comparison table plus the recommendation.
type Result struct {
	Entries []Entry
	Best    Entry
}

// Compare scores the selection and picks the best point. Ties resolve
// to the first-encountered in selection order. Fewer than two selected
// points yield ErrInsufficientSelection instead of a degenerate table.
func (s *Selection) Compare() (Result, error) {
	if len(s.points) < 2 {
		return Result{}, ErrInsufficientSelection
	}

	res := Result{Entries: make([]Entry, 0, len(s.points))}
	for _, p := range s.points {
		e := Entry{Point: p, Score: Score(p)}
		res.Entries = append(res.Entries, e)
		if e.Score > res.Best.Score || res.Best.Point.ID == "" {
			res.Best = e
		}
	}
	return res, nil
}
