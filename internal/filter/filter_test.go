package filter

import (
	"testing"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

func boolp(v bool) *bool { return &v }

func pt(cat model.Category, attrs map[string]string) model.Point {
	return model.Point{ID: model.PointID(48.85, 2.35), Category: cat, Lat: 48.85, Lon: 2.35, Attrs: attrs}
}

func TestMatches(t *testing.T) {
	parisLib := pt(model.Library, map[string]string{
		model.AttrName: "Bibliothèque Mazarine",
		model.AttrCity: "Paris",
	})
	lyonCafe := pt(model.Cafe, map[string]string{
		model.AttrName:    "Café du Rhône",
		model.AttrCity:    "Lyon",
		model.AttrWifi:    "true",
		model.AttrAddress: "12 Quai Saint-Antoine, 69002 Lyon",
	})
	noCity := pt(model.Coworking, map[string]string{
		model.AttrName: "Anywhere Desk",
	})

	cases := []struct {
		name string
		p    model.Point
		c    model.Criteria
		want bool
	}{
		{"empty criteria match everything", noCity, model.Criteria{}, true},
		{"city substring case-insensitive", parisLib, model.Criteria{City: "par"}, true},
		{"city mismatch", parisLib, model.Criteria{City: "Lyon"}, false},
		{"city filter fails without a resolvable city", noCity, model.Criteria{City: "Paris"}, false},
		{"category exact", parisLib, model.Criteria{Category: model.Library}, true},
		{"category mismatch", parisLib, model.Criteria{Category: model.Cafe}, false},
		{"wifi required", lyonCafe, model.Criteria{Wifi: boolp(true)}, true},
		{"wifi required absent", parisLib, model.Criteria{Wifi: boolp(true)}, false},
		{"wifi excluded", parisLib, model.Criteria{Wifi: boolp(false)}, true},
		{"search known city is equality on city", parisLib, model.Criteria{Search: "paris"}, true},
		{"search known city rejects other city", lyonCafe, model.Criteria{Search: "paris"}, false},
		{"search substring on name", lyonCafe, model.Criteria{Search: "rhône"}, true},
		{"search substring on address", lyonCafe, model.Criteria{Search: "saint-antoine"}, true},
		{"search substring on category", lyonCafe, model.Criteria{Search: "caf"}, true},
		{"search no field matches", parisLib, model.Criteria{Search: "piscine"}, false},
		{"blank search matches", parisLib, model.Criteria{Search: "   "}, true},
		{"all criteria conjunct", lyonCafe, model.Criteria{City: "Lyon", Category: model.Cafe, Wifi: boolp(true), Search: "rhône"}, true},
		{"one failing criterion fails the conjunction", lyonCafe, model.Criteria{City: "Lyon", Category: model.Library}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Matches(c.p, c.c); got != c.want {
				t.Fatalf("Matches(%v)=%v want %v", c.c, got, c.want)
			}
		})
	}
}

// Matches must equal the conjunction of the individual predicates
// regardless of which criteria are set, so criteria application order
// can never matter.
func TestMatches_Conjunction(t *testing.T) {
	p := pt(model.Cafe, map[string]string{
		model.AttrName: "Le Comptoir",
		model.AttrCity: "Toulouse",
		model.AttrWifi: "true",
	})
	crits := []model.Criteria{
		{},
		{City: "Toulouse"},
		{Category: model.Library},
		{Wifi: boolp(false)},
		{City: "toulouse", Category: model.Cafe, Wifi: boolp(true), Search: "comptoir"},
	}
	for _, c := range crits {
		want := matchesCity(p, c.City) && matchesCategory(p, c.Category) &&
			matchesWifi(p, c.Wifi) && matchesSearch(p, c.Search)
		if got := Matches(p, c); got != want {
			t.Fatalf("Matches(%v)=%v, conjunction says %v", c, got, want)
		}
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	points := []model.Point{
		{ID: "a", Category: model.Cafe, Attrs: map[string]string{model.AttrCity: "Nice"}},
		{ID: "b", Category: model.Library, Attrs: map[string]string{model.AttrCity: "Nice"}},
		{ID: "c", Category: model.Cafe, Attrs: map[string]string{model.AttrCity: "Nice"}},
		{ID: "d", Category: model.Cafe, Attrs: map[string]string{model.AttrCity: "Lyon"}},
	}
	out := Apply(points, model.Criteria{City: "Nice", Category: model.Cafe})
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("Apply returned %v, want [a c] in store order", ids(out))
	}
}

func ids(points []model.Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}

func TestEngine_MemoReuse(t *testing.T) {
	e, err := NewEngine(8)
	if err != nil {
		t.Fatal(err)
	}
	points := []model.Point{
		{ID: "a", Category: model.Cafe, Attrs: map[string]string{model.AttrCity: "Paris"}},
		{ID: "b", Category: model.Library, Attrs: map[string]string{model.AttrCity: "Paris"}},
	}
	c := model.Criteria{Category: model.Cafe}

	first := e.Filter(points, c)
	second := e.Filter(points, c)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d/%d results, want 1/1", len(first), len(second))
	}
	if &first[0] != &second[0] {
		t.Fatal("second call should reuse the memoized slice")
	}

	e.Invalidate()
	third := e.Filter(points, c)
	if len(third) != 1 {
		t.Fatalf("post-invalidate filter returned %d results", len(third))
	}
	if &first[0] == &third[0] {
		t.Fatal("invalidate should drop the memoized slice")
	}
}
