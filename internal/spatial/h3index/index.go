// Package h3index buckets points by H3 cell so viewport containment
// tests only touch candidates near the viewed area.
package h3index

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

// Index maps H3 cells at a fixed resolution to the IDs of the points
// they contain. Built once at load; read-only afterwards.
type Index struct {
	res   int
	cells map[h3.Cell][]string
}

func Build(points []model.Point, res int) (*Index, error) {
	if err := validateRes(res); err != nil {
		return nil, err
	}
	ix := &Index{res: res, cells: make(map[h3.Cell][]string)}
	for _, p := range points {
		c, err := h3.LatLngToCell(h3.LatLng{Lat: p.Lat, Lng: p.Lon}, res)
		if err != nil {
			return nil, fmt.Errorf("index point %s: %w", p.ID, err)
		}
		ix.cells[c] = append(ix.cells[c], p.ID)
	}
	return ix, nil
}

func (ix *Index) Resolution() int {
	return ix.res
}

// Candidates returns the IDs of every point whose cell neighborhood
// intersects the box. The set over-approximates: cells are padded with
// a grid disk so boundary points are never missed, and callers must
// still apply the exact containment test.
func (ix *Index) Candidates(bb model.BBox) (map[string]struct{}, error) {
	cells, err := coverBBox(bb, ix.res)
	if err != nil {
		return nil, err
	}

	padded := make(map[h3.Cell]struct{}, len(cells)*7)
	for c := range cells {
		disk, err := h3.GridDisk(c, 1)
		if err != nil {
			return nil, fmt.Errorf("grid disk: %w", err)
		}
		for _, d := range disk {
			padded[d] = struct{}{}
		}
	}

	out := make(map[string]struct{})
	for c := range padded {
		for _, id := range ix.cells[c] {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// coverBBox polyfills the rectangle and adds the cells of its corners
// and center, since polyfill alone can return nothing for boxes
// smaller than one cell.
func coverBBox(bb model.BBox, res int) (map[h3.Cell]struct{}, error) {
	outer := h3.GeoLoop{
		{Lat: bb.South, Lng: bb.West},
		{Lat: bb.South, Lng: bb.East},
		{Lat: bb.North, Lng: bb.East},
		{Lat: bb.North, Lng: bb.West},
	}
	filled, err := h3.PolygonToCells(h3.GeoPolygon{GeoLoop: outer}, res)
	if err != nil {
		return nil, fmt.Errorf("h3 polyfill: %w", err)
	}

	cells := make(map[h3.Cell]struct{}, len(filled)+5)
	for _, c := range filled {
		cells[c] = struct{}{}
	}

	anchors := []h3.LatLng{
		{Lat: bb.South, Lng: bb.West},
		{Lat: bb.South, Lng: bb.East},
		{Lat: bb.North, Lng: bb.East},
		{Lat: bb.North, Lng: bb.West},
		{Lat: (bb.South + bb.North) / 2, Lng: (bb.West + bb.East) / 2},
	}
	for _, ll := range anchors {
		c, err := h3.LatLngToCell(ll, res)
		if err != nil {
			return nil, fmt.Errorf("h3 anchor cell: %w", err)
		}
		cells[c] = struct{}{}
	}
	return cells, nil
}

func validateRes(res int) error {
	if res < 0 || res > 15 {
		return fmt.Errorf("invalid H3 resolution %d (must be 0..15)", res)
	}
	return nil
}
