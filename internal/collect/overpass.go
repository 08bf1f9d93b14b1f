// Package collect implements the offline dataset collection scripts:
// Overpass API pulls per city plus open-data exports, written out as
// the GeoJSON files the interactive engine loads. It is not part of
// the runtime pipeline.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JeromeFabre77/SpotWork/internal/ingest"
)

const DefaultOverpassURL = "https://overpass.kumi.systems/api/interpreter"

// OverpassCity pairs a city with its OSM area relation.
type OverpassCity struct {
	Name   string
	AreaID int64
}

// FranceCities lists the collected cities (relation IDs offset by the
// Overpass area namespace).
func FranceCities() []OverpassCity {
	return []OverpassCity{
		{Name: "Paris", AreaID: 3600071525},
		{Name: "Marseille", AreaID: 3600076469},
		{Name: "Lyon", AreaID: 3600120965},
		{Name: "Toulouse", AreaID: 3600035738},
		{Name: "Nice", AreaID: 3600170100},
	}
}

// CategorySpec describes one collected dataset: the spotType tag it
// carries, its output file and its Overpass query per city area.
type CategorySpec struct {
	SpotType string
	Filename string
	Query    func(areaID int64) string
}

func CoworkingSpec() CategorySpec {
	return CategorySpec{
		SpotType: "Coworking",
		Filename: "coworking_france.geojson",
		Query: func(areaID int64) string {
			return fmt.Sprintf(`
[out:json][timeout:120];
(
  node["amenity"="coworking_space"][name](area:%d);
  way["amenity"="coworking_space"][name](area:%d);
  node["office"="coworking"][name](area:%d);
  way["office"="coworking"][name](area:%d);
);
out center;`, areaID, areaID, areaID, areaID)
		},
	}
}

func LibrarySpec() CategorySpec {
	return CategorySpec{
		SpotType: "Library",
		Filename: "libraries_france.geojson",
		Query: func(areaID int64) string {
			return fmt.Sprintf(`
[out:json][timeout:120];
(
  node["amenity"="library"][name](area:%d);
  way["amenity"="library"][name](area:%d);
  relation["amenity"="library"][name](area:%d);
);
out center;`, areaID, areaID, areaID)
		},
	}
}

func CafeSpec() CategorySpec {
	return CategorySpec{
		SpotType: "Cofee", // historical dataset spelling, kept for compatibility
		Filename: "cofee_france.geojson",
		Query: func(areaID int64) string {
			return fmt.Sprintf(`
[out:json][timeout:120];
(
  node["amenity"="cafe"]["internet_access"][name](area:%d);
  way["amenity"="cafe"]["internet_access"][name](area:%d);
  node["amenity"="cafe"]["socket"][name](area:%d);
  way["amenity"="cafe"]["socket"][name](area:%d);
);
out center;`, areaID, areaID, areaID, areaID)
		},
	}
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type OverpassClient struct {
	base     string
	client   *http.Client
	log      *slog.Logger
	attempts int
	backoff  time.Duration
}

func NewOverpassClient(base string, client *http.Client, log *slog.Logger) *OverpassClient {
	if base == "" {
		base = DefaultOverpassURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OverpassClient{
		base:     base,
		client:   client,
		log:      log,
		attempts: 3,
		backoff:  2 * time.Second,
	}
}

// FetchAll collects one category across every city and assembles the
// tagged feature collection.
func (c *OverpassClient) FetchAll(ctx context.Context, spec CategorySpec, cts []OverpassCity) (ingest.FeatureCollection, error) {
	fc := ingest.FeatureCollection{Type: "FeatureCollection"}
	for _, city := range cts {
		elements, err := c.fetchCity(ctx, spec, city)
		if err != nil {
			return ingest.FeatureCollection{}, fmt.Errorf("fetch %s for %s: %w", spec.SpotType, city.Name, err)
		}
		feats := toFeatures(elements, city.Name, spec.SpotType)
		fc.Features = append(fc.Features, feats...)
		c.log.Info("city collected",
			"spot_type", spec.SpotType,
			"city", city.Name,
			"features", len(feats))
	}
	return fc, nil
}

func (c *OverpassClient) fetchCity(ctx context.Context, spec CategorySpec, city OverpassCity) ([]overpassElement, error) {
	body := url.Values{"data": {spec.Query(city.AreaID)}}.Encode()

	var out overpassResponse
	err := withRetry(ctx, c.log, c.attempts, c.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, strings.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
			return fmt.Errorf("overpass status %d: %s", resp.StatusCode, string(b))
		}
		out = overpassResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.Elements, nil
}

// toFeatures converts Overpass elements to GeoJSON features, tagging
// spotType and backfilling addr:city for area-scoped results.
func toFeatures(elements []overpassElement, cityName, spotType string) []ingest.Feature {
	out := make([]ingest.Feature, 0, len(elements))
	for _, el := range elements {
		lat, lon, ok := elementCoords(el)
		if !ok {
			continue
		}
		props := make(map[string]any, len(el.Tags)+3)
		props["@id"] = el.Type + "/" + strconv.FormatInt(el.ID, 10)
		props["@type"] = el.Type
		for k, v := range el.Tags {
			props[k] = v
		}
		if _, ok := props["addr:city"]; !ok && cityName != "" {
			props["addr:city"] = cityName
		}
		props["spotType"] = spotType

		out = append(out, ingest.Feature{
			Type: "Feature",
			Geometry: &ingest.Geometry{
				Type:        "Point",
				Coordinates: []float64{lon, lat},
			},
			Properties: props,
		})
	}
	return out
}

func elementCoords(el overpassElement) (lat, lon float64, ok bool) {
	switch {
	case el.Lat != nil && el.Lon != nil:
		return *el.Lat, *el.Lon, true
	case el.Center != nil:
		return el.Center.Lat, el.Center.Lon, true
	default:
		return 0, 0, false
	}
}
