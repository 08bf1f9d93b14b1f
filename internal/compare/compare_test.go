package compare

import (
	"errors"
	"testing"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

func mk(id string, attrs map[string]string) model.Point {
	return model.Point{ID: id, Category: model.Coworking, Attrs: attrs}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name  string
		attrs map[string]string
		want  int
	}{
		{"bare point", nil, 0},
		{"free wifi", map[string]string{
			model.AttrWifi: "true", model.AttrWifiFee: "no",
		}, 20},
		{"paid wifi scores lower", map[string]string{
			model.AttrWifi: "true", model.AttrWifiFee: "yes",
		}, 10},
		{"full wheelchair", map[string]string{model.AttrWheelchair: "yes"}, 15},
		{"partial wheelchair", map[string]string{model.AttrWheelchair: "limited"}, 8},
		{"public operator", map[string]string{model.AttrOperatorType: "public"}, 5},
		{"non-smoking", map[string]string{model.AttrSmoking: "no"}, 10},
		{"hours and contact", map[string]string{
			model.AttrHours: "Mo-Fr 09:00-18:00",
			model.AttrPhone: "+33 1 23 45 67 89",
		}, 10},
		{"well equipped spot", map[string]string{
			model.AttrWifi:           "true",
			model.AttrWifiFee:        "no",
			model.AttrWheelchair:     "yes",
			model.AttrAirCon:         "yes",
			model.AttrIndoorSeating:  "yes",
			model.AttrOutdoorSeating: "yes",
			model.AttrOperatorType:   "public",
			model.AttrSmoking:        "no",
			model.AttrHours:          "24/7",
			model.AttrEmail:          "hello@spot.fr",
		}, 90},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := mk("p", c.attrs)
			if got := Score(p); got != c.want {
				t.Fatalf("Score=%d want %d", got, c.want)
			}
			// pure function: scoring twice never drifts
			if again := Score(p); again != c.want {
				t.Fatalf("second Score=%d want %d", again, c.want)
			}
		})
	}
}

func TestToggle_AddRemove(t *testing.T) {
	var s Selection
	a := mk("a", nil)

	on, err := s.Toggle(a)
	if err != nil || !on {
		t.Fatalf("Toggle add: on=%v err=%v", on, err)
	}
	if !s.Contains("a") || s.Len() != 1 {
		t.Fatalf("selection=%v", s.Points())
	}

	on, err = s.Toggle(a)
	if err != nil || on {
		t.Fatalf("Toggle remove: on=%v err=%v", on, err)
	}
	if s.Len() != 0 {
		t.Fatalf("selection not empty after remove: %v", s.Points())
	}
}

func TestToggle_LimitLeavesStateUnchanged(t *testing.T) {
	var s Selection
	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := s.Toggle(mk(id, nil)); err != nil {
			t.Fatal(err)
		}
	}

	on, err := s.Toggle(mk("e", nil))
	if !errors.Is(err, ErrSelectionLimit) {
		t.Fatalf("fifth toggle err=%v, want ErrSelectionLimit", err)
	}
	if on {
		t.Fatal("rejected point must not report selected")
	}
	if s.Len() != MaxSelection || s.Contains("e") {
		t.Fatalf("rejected toggle mutated the selection: %v", s.Points())
	}

	// deselecting at the bound still works
	if on, err := s.Toggle(mk("d", nil)); err != nil || on {
		t.Fatalf("remove at bound: on=%v err=%v", on, err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len=%d want 3", s.Len())
	}
}

func TestToggle_PreservesInsertionOrder(t *testing.T) {
	var s Selection
	for _, id := range []string{"c", "a", "b"} {
		if _, err := s.Toggle(mk(id, nil)); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Points()
	for i, want := range []string{"c", "a", "b"} {
		if got[i].ID != want {
			t.Fatalf("order %v, want [c a b]", got)
		}
	}
}

func TestCompare_InsufficientSelection(t *testing.T) {
	var s Selection
	if _, err := s.Compare(); !errors.Is(err, ErrInsufficientSelection) {
		t.Fatalf("empty selection err=%v", err)
	}
	_, _ = s.Toggle(mk("a", nil))
	if _, err := s.Compare(); !errors.Is(err, ErrInsufficientSelection) {
		t.Fatalf("single selection err=%v", err)
	}
}

func TestCompare_PicksBest(t *testing.T) {
	var s Selection
	_, _ = s.Toggle(mk("low", nil))
	_, _ = s.Toggle(mk("high", map[string]string{
		model.AttrWifi: "true", model.AttrWifiFee: "no",
	}))

	res, err := s.Compare()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries=%d want 2", len(res.Entries))
	}
	if res.Best.Point.ID != "high" || res.Best.Score != 20 {
		t.Fatalf("best=%s/%d, want high/20", res.Best.Point.ID, res.Best.Score)
	}
}

func TestCompare_TieKeepsFirst(t *testing.T) {
	var s Selection
	attrs := map[string]string{model.AttrSmoking: "no"}
	_, _ = s.Toggle(mk("first", attrs))
	_, _ = s.Toggle(mk("second", attrs))

	res, err := s.Compare()
	if err != nil {
		t.Fatal(err)
	}
	if res.Best.Point.ID != "first" {
		t.Fatalf("tie resolved to %s, want first in selection order", res.Best.Point.ID)
	}
}

// A zero-score tie must still pick an entry, not the zero value.
func TestCompare_AllZeroScores(t *testing.T) {
	var s Selection
	_, _ = s.Toggle(mk("a", nil))
	_, _ = s.Toggle(mk("b", nil))

	res, err := s.Compare()
	if err != nil {
		t.Fatal(err)
	}
	if res.Best.Point.ID != "a" {
		t.Fatalf("best=%q, want the first selected point", res.Best.Point.ID)
	}
}
