// Package model defines core domain types shared across the engine.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Category tags a point of interest with its dataset of origin.
type Category string

const (
	Coworking Category = "Coworking"
	Library   Category = "Library"
	Cafe      Category = "Cafe"
)

// Categories lists every known category in dataset load order.
func Categories() []Category {
	return []Category{Coworking, Library, Cafe}
}

func ParseCategory(s string) (Category, bool) {
	switch strings.TrimSpace(s) {
	case string(Coworking):
		return Coworking, true
	case string(Library):
		return Library, true
	case string(Cafe), "Cofee": // legacy dataset spelling
		return Cafe, true
	}
	return "", false
}

// Normalized attribute keys produced by ingestion.
const (
	AttrName           = "name"
	AttrCity           = "city"
	AttrContactCity    = "contact_city"
	AttrAddrCity       = "addr_city"
	AttrAddress        = "address"
	AttrHours          = "hours"
	AttrPhone          = "phone"
	AttrEmail          = "email"
	AttrWebsite        = "website"
	AttrDescription    = "description"
	AttrWifi           = "wifi"
	AttrInternetAccess = "internet_access"
	AttrWifiFee        = "wifi_fee"
	AttrWheelchair     = "wheelchair"
	AttrAirCon         = "air_conditioning"
	AttrIndoorSeating  = "indoor_seating"
	AttrOutdoorSeating = "outdoor_seating"
	AttrOperatorType   = "operator_type"
	AttrSmoking        = "smoking"
	AttrClosed         = "closed"
)

// Point is one immutable point of interest. Attrs holds normalized
// string attributes keyed by the Attr* constants.
type Point struct {
	ID       string
	Category Category
	Lat      float64
	Lon      float64
	Attrs    map[string]string
}

// PointID derives the coordinate key used for marker and selection
// identity. Distinct points sharing exact coordinates coalesce under
// one key; that is accepted behavior at this dataset scale.
func PointID(lat, lon float64) string {
	return formatCoord(lat) + "_" + formatCoord(lon)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (p Point) Attr(key string) string {
	return p.Attrs[key]
}

func (p Point) Name() string {
	return p.Attrs[AttrName]
}

// City resolves the point's city from prioritized attribute fallbacks.
// An empty result means no city could be resolved.
func (p Point) City() string {
	for _, k := range []string{AttrCity, AttrContactCity, AttrAddrCity} {
		if v := strings.TrimSpace(p.Attrs[k]); v != "" {
			return v
		}
	}
	return ""
}

// HasWifi interprets wifi truthiness from the attribute encodings the
// datasets use: an explicit boolean flag or an internet_access tag.
func (p Point) HasWifi() bool {
	if truthy(p.Attrs[AttrWifi]) {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(p.Attrs[AttrInternetAccess])) {
	case "wlan", "yes":
		return true
	}
	return false
}

// WifiFree reports whether the point declares wifi at no charge.
func (p Point) WifiFree() bool {
	if !p.HasWifi() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(p.Attrs[AttrWifiFee])) {
	case "no", "none", "free", "gratuit", "0":
		return true
	}
	return false
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// BBox is a geographic rectangle in EPSG:4326 degrees.
type BBox struct {
	West, South float64
	East, North float64
}

func (b BBox) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.West, b.South, b.East, b.North)
}

// Contains reports whether the coordinate lies within the rectangle,
// boundaries inclusive.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

func (b BBox) Valid() bool {
	return b.West >= -180 && b.East <= 180 && b.East > b.West &&
		b.South >= -90 && b.North <= 90 && b.North > b.South
}

// Extend grows the box to include the coordinate.
func (b BBox) Extend(lat, lon float64) BBox {
	if lat < b.South {
		b.South = lat
	}
	if lat > b.North {
		b.North = lat
	}
	if lon < b.West {
		b.West = lon
	}
	if lon > b.East {
		b.East = lon
	}
	return b
}

// BoundsOf computes the tight bounding box of a non-empty point set.
func BoundsOf(points []Point) (BBox, bool) {
	if len(points) == 0 {
		return BBox{}, false
	}
	b := BBox{
		West: points[0].Lon, East: points[0].Lon,
		South: points[0].Lat, North: points[0].Lat,
	}
	for _, p := range points[1:] {
		b = b.Extend(p.Lat, p.Lon)
	}
	return b, true
}

// Viewport is the currently visible map rectangle and zoom level.
type Viewport struct {
	Bounds BBox
	Zoom   int
}

// Criteria holds the user's active filters. Zero members always match.
type Criteria struct {
	City     string
	Category Category
	Wifi     *bool
	Search   string
}

func (c Criteria) IsZero() bool {
	return c.City == "" && c.Category == "" && c.Wifi == nil && c.Search == ""
}

// WifiRequired is a convenience constructor for the tri-state wifi filter.
func WifiRequired(v bool) *bool {
	return &v
}
