package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
)

// Normalize converts a feature collection into points under the given
// mapping. Features without a usable name or a valid Point geometry
// are skipped silently; skipping is a filtering step, not a failure.
func Normalize(fc FeatureCollection, m Mapping) []model.Point {
	points := make([]model.Point, 0, len(fc.Features))
	for _, f := range fc.Features {
		p, ok := normalizeFeature(f, m)
		if !ok {
			observability.IncIngestSkipped(string(m.Category))
			continue
		}
		observability.IncIngestAccepted(string(m.Category))
		points = append(points, p)
	}
	return points
}

// Parse decodes raw GeoJSON and normalizes it in one step.
func Parse(raw []byte, m Mapping) ([]model.Point, error) {
	fc, err := ParseCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%s dataset: %w", m.Category, err)
	}
	return Normalize(fc, m), nil
}

func normalizeFeature(f Feature, m Mapping) (model.Point, bool) {
	if !validGeometry(f) {
		return model.Point{}, false
	}
	// GeoJSON positions are lon,lat
	lon := f.Geometry.Coordinates[0]
	lat := f.Geometry.Coordinates[1]
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return model.Point{}, false
	}

	attrs := make(map[string]string, len(m.rules))
	for _, r := range m.rules {
		for _, raw := range r.from {
			if v := stringify(f.Properties[raw]); v != "" {
				attrs[r.attr] = v
				break
			}
		}
	}

	if m.address != nil && attrs[model.AttrAddress] == "" {
		street := stringify(f.Properties[m.address.street])
		postcode := stringify(f.Properties[m.address.postcode])
		city := stringify(f.Properties[m.address.city])
		if street != "" && postcode != "" && city != "" {
			attrs[model.AttrAddress] = street + ", " + postcode + " " + city
		}
	}

	if attrs[model.AttrName] == "" {
		return model.Point{}, false
	}

	return model.Point{
		ID:       model.PointID(lat, lon),
		Category: m.Category,
		Lat:      lat,
		Lon:      lon,
		Attrs:    attrs,
	}, true
}

// stringify flattens the raw property value space (strings, bools and
// numbers all occur across the datasets) into normalized strings.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
