// Package viewport computes the bounded visible subset for a map view.
package viewport

import (
	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/spatial/h3index"
)

// Cap returns the zoom-dependent marker budget.
func Cap(zoom int) int {
	switch {
	case zoom < 10:
		return 100
	case zoom < 12:
		return 300
	case zoom < 14:
		return 600
	default:
		return 1000
	}
}

// Window computes visible subsets, optionally pruning containment
// candidates through a spatial index.
type Window struct {
	Index *h3index.Index
}

// ComputeVisible filters the ordered set to points inside the viewport
// bounds and truncates to the zoom cap. Truncation keeps the first N
// in the set's existing order; no re-sorting, no distance priority.
// Deterministic: identical inputs produce identical output.
func (w Window) ComputeVisible(filtered []model.Point, vp model.Viewport) []model.Point {
	budget := Cap(vp.Zoom)

	candidates := w.candidateIDs(filtered, vp.Bounds)

	out := make([]model.Point, 0, min(budget, len(filtered)))
	for _, p := range filtered {
		if candidates != nil {
			if _, ok := candidates[p.ID]; !ok {
				continue
			}
		}
		if !vp.Bounds.Contains(p.Lat, p.Lon) {
			continue
		}
		out = append(out, p)
		if len(out) == budget {
			break
		}
	}
	return out
}

// candidateIDs consults the index when present. Index failures fall
// back to the exact full scan; pruning is an optimization only.
func (w Window) candidateIDs(filtered []model.Point, bb model.BBox) map[string]struct{} {
	if w.Index == nil || len(filtered) == 0 {
		return nil
	}
	ids, err := w.Index.Candidates(bb)
	if err != nil {
		return nil
	}
	return ids
}
