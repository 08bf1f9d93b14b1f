package h3index

import (
	"fmt"
	"testing"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

func lattice(n int) []model.Point {
	pts := make([]model.Point, 0, n)
	for i := 0; i < n; i++ {
		lat := 48.80 + float64(i%20)*0.004
		lon := 2.25 + float64(i/20)*0.004
		pts = append(pts, model.Point{ID: fmt.Sprintf("p%03d", i), Lat: lat, Lon: lon})
	}
	return pts
}

func TestBuild_RejectsInvalidResolution(t *testing.T) {
	for _, res := range []int{-1, 16} {
		if _, err := Build(nil, res); err == nil {
			t.Errorf("Build(res=%d) should fail", res)
		}
	}
}

func TestBuild_Resolution(t *testing.T) {
	ix, err := Build(lattice(10), 8)
	if err != nil {
		t.Fatal(err)
	}
	if ix.Resolution() != 8 {
		t.Fatalf("Resolution()=%d", ix.Resolution())
	}
}

// The candidate set must contain every point actually inside the box;
// extras are fine, misses are not.
func TestCandidates_SupersetOfContained(t *testing.T) {
	pts := lattice(400)
	ix, err := Build(pts, 8)
	if err != nil {
		t.Fatal(err)
	}

	bb := model.BBox{West: 2.26, South: 48.81, East: 2.30, North: 48.85}
	got, err := ix.Candidates(bb)
	if err != nil {
		t.Fatal(err)
	}

	contained := 0
	for _, p := range pts {
		if !bb.Contains(p.Lat, p.Lon) {
			continue
		}
		contained++
		if _, ok := got[p.ID]; !ok {
			t.Fatalf("point %s inside the box missing from candidates", p.ID)
		}
	}
	if contained == 0 {
		t.Fatal("test box contains no points; fixture is wrong")
	}
}

// Boxes smaller than one cell must still find the points in that cell.
func TestCandidates_TinyBox(t *testing.T) {
	p := model.Point{ID: "only", Lat: 48.8566, Lon: 2.3522}
	ix, err := Build([]model.Point{p}, 8)
	if err != nil {
		t.Fatal(err)
	}
	eps := 0.00001
	bb := model.BBox{West: p.Lon - eps, South: p.Lat - eps, East: p.Lon + eps, North: p.Lat + eps}
	got, err := ix.Candidates(bb)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["only"]; !ok {
		t.Fatal("tiny box lost the point it surrounds")
	}
}

func TestCandidates_FarAwayBoxIsEmpty(t *testing.T) {
	ix, err := Build(lattice(50), 8)
	if err != nil {
		t.Fatal(err)
	}
	// Marseille box, points are all in Paris
	bb := model.BBox{West: 5.3, South: 43.2, East: 5.45, North: 43.35}
	got, err := ix.Candidates(bb)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("distant box matched %d candidates", len(got))
	}
}
