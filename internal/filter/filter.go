// Package filter evaluates user criteria against points.
package filter

import (
	"strings"

	"github.com/JeromeFabre77/SpotWork/internal/cities"
	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
)

// Matches reports whether the point satisfies every active criterion.
// Unset criteria always match; the predicates are independent and
// commute. Pure function, never errors: unresolved fields simply fail
// their predicate.
func Matches(p model.Point, c model.Criteria) bool {
	return matchesCity(p, c.City) &&
		matchesCategory(p, c.Category) &&
		matchesWifi(p, c.Wifi) &&
		matchesSearch(p, c.Search)
}

func matchesCity(p model.Point, want string) bool {
	if want == "" {
		return true
	}
	city := p.City()
	if city == "" {
		return false
	}
	return strings.Contains(strings.ToLower(city), strings.ToLower(want))
}

func matchesCategory(p model.Point, want model.Category) bool {
	return want == "" || p.Category == want
}

func matchesWifi(p model.Point, want *bool) bool {
	return want == nil || p.HasWifi() == *want
}

// matchesSearch treats text naming a known city as a city-equality
// filter; any other text is substring-matched against name, category
// and address, where one matching field suffices.
func matchesSearch(p model.Point, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	if city, ok := cities.Lookup(text); ok {
		return strings.EqualFold(p.City(), city.Name)
	}
	q := strings.ToLower(text)
	for _, field := range []string{p.Name(), string(p.Category), p.Attr(model.AttrAddress)} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply evaluates the criteria over the whole set, preserving order.
func Apply(points []model.Point, c model.Criteria) []model.Point {
	observability.IncFilterRun()
	out := make([]model.Point, 0, len(points))
	for _, p := range points {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Engine memoizes filtered sets per criteria so viewport recomputation
// does not re-evaluate predicates over the full store.
type Engine struct {
	memo *Memo
}

func NewEngine(memoSize int) (*Engine, error) {
	m, err := NewMemo(memoSize)
	if err != nil {
		return nil, err
	}
	return &Engine{memo: m}, nil
}

// Filter returns the ordered subset matching the criteria, reusing the
// memoized result when the criteria key is unchanged.
func (e *Engine) Filter(points []model.Point, c model.Criteria) []model.Point {
	key := CriteriaKey(c)
	if cached, ok := e.memo.Get(key); ok {
		return cached
	}
	out := Apply(points, c)
	e.memo.Add(key, out)
	return out
}

// Invalidate drops all memoized results.
func (e *Engine) Invalidate() {
	e.memo.Purge()
}
