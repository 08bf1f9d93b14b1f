// Package ingest normalizes raw GeoJSON features into domain points.
//
// The three category datasets use different property vocabularies
// (OSM tags for coworking spaces and cafés, open-data exports for
// libraries). One normalizer runs against a per-category mapping
// table instead of one processing function per dataset.
package ingest

import (
	"encoding/json"
	"fmt"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ParseCollection decodes a GeoJSON FeatureCollection document.
func ParseCollection(raw []byte) (FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return FeatureCollection{}, fmt.Errorf("decode feature collection: %w", err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return FeatureCollection{}, fmt.Errorf("unexpected GeoJSON type %q", fc.Type)
	}
	return fc, nil
}

// validGeometry requires a Point with at least lon and lat.
func validGeometry(f Feature) bool {
	return f.Geometry != nil &&
		f.Geometry.Type == "Point" &&
		len(f.Geometry.Coordinates) >= 2
}
