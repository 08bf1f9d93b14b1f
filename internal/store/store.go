// Package store holds the loaded point set for the session lifetime.
package store

import "github.com/JeromeFabre77/SpotWork/internal/core/model"

// Store is the immutable point store. Batches keep dataset load order;
// nothing mutates the set after construction.
type Store struct {
	points []model.Point
	byCat  map[model.Category]int
}

func New(batches ...[]model.Point) *Store {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	s := &Store{
		points: make([]model.Point, 0, total),
		byCat:  make(map[model.Category]int),
	}
	for _, b := range batches {
		for _, p := range b {
			s.points = append(s.points, p)
			s.byCat[p.Category]++
		}
	}
	return s
}

// All returns the full point set in load order. Callers must not
// modify the returned slice.
func (s *Store) All() []model.Point {
	return s.points
}

func (s *Store) Len() int {
	return len(s.points)
}

// CountByCategory reports how many points a category contributed.
func (s *Store) CountByCategory(cat model.Category) int {
	return s.byCat[cat]
}

// FindByID returns the first point with the given coordinate key.
// Points sharing exact coordinates share a key; the first loaded wins.
func (s *Store) FindByID(id string) (model.Point, bool) {
	for _, p := range s.points {
		if p.ID == id {
			return p, true
		}
	}
	return model.Point{}, false
}
