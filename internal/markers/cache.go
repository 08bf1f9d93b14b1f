// Package markers materializes visible points onto the display layer
// through a per-session handle cache.
package markers

import (
	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
	"github.com/JeromeFabre77/SpotWork/internal/render"
)

// IconFor picks the marker icon for a category.
func IconFor(cat model.Category) render.Icon {
	switch cat {
	case model.Library:
		return "./assets/icons/markers/Library.png"
	case model.Cafe:
		return "./assets/icons/markers/Cofee.png"
	default:
		return "./assets/icons/markers/Coworking.png"
	}
}

// Cache memoizes one marker handle per point ID. Handles are created
// lazily on first visibility and kept for the whole session; the cache
// is bounded by the distinct point count, which is small at this
// dataset scale. Points sharing exact coordinates share one handle.
type Cache struct {
	factory render.Factory
	handles map[string]render.Handle
}

func NewCache(f render.Factory) *Cache {
	return &Cache{
		factory: f,
		handles: make(map[string]render.Handle),
	}
}

// Materialize replaces the layer contents with exactly the markers for
// the visible set: clear everything, then reattach cached handles,
// creating handles only for cache misses. An empty set empties the
// layer. Not safe for concurrent calls; the orchestrator serializes
// recomputation.
func (c *Cache) Materialize(layer render.Layer, visible []model.Point) {
	layer.Clear()
	for _, p := range visible {
		h, ok := c.handles[p.ID]
		if !ok {
			h = c.factory.CreateMarker(p.Lat, p.Lon, IconFor(p.Category), p.Name())
			c.handles[p.ID] = h
			observability.IncMarkerCacheMiss()
		} else {
			observability.IncMarkerCacheHit()
		}
		layer.Attach(h)
	}
	observability.ObserveVisiblePoints(len(visible))
}

// Len reports how many handles were created so far this session.
func (c *Cache) Len() int {
	return len(c.handles)
}
