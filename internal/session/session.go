// Package session orchestrates the filtering and rendering pipeline
// for one interactive view session. All mutable state (criteria,
// viewport, pagination, selection) lives on the Session; the engines
// it calls are pure functions or stateless transformers over it.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JeromeFabre77/SpotWork/internal/cities"
	"github.com/JeromeFabre77/SpotWork/internal/compare"
	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/dataset"
	"github.com/JeromeFabre77/SpotWork/internal/filter"
	"github.com/JeromeFabre77/SpotWork/internal/markers"
	"github.com/JeromeFabre77/SpotWork/internal/pagination"
	"github.com/JeromeFabre77/SpotWork/internal/render"
	"github.com/JeromeFabre77/SpotWork/internal/spatial/h3index"
	"github.com/JeromeFabre77/SpotWork/internal/store"
	"github.com/JeromeFabre77/SpotWork/internal/viewport"
)

type Config struct {
	PageSize         int
	IndexRes         int
	FilterMemoSize   int
	FilterDebounce   time.Duration
	SearchDebounce   time.Duration
	ViewportDebounce time.Duration
}

type Deps struct {
	Log       *slog.Logger
	Map       render.MapView
	Layer     render.Layer
	Factory   render.Factory
	Presenter render.Presenter
}

// Session reacts to discrete user events. One event applies at a time;
// the visible set is always replaced wholesale, never patched.
type Session struct {
	id       string
	log      *slog.Logger
	indexRes int

	mapView   render.MapView
	layer     render.Layer
	presenter render.Presenter

	filt    *filter.Engine
	window  viewport.Window
	markers *markers.Cache

	filterDeb *debouncer
	searchDeb *debouncer
	viewDeb   *debouncer

	mu        sync.Mutex
	store     *store.Store
	criteria  model.Criteria
	page      pagination.State
	selection compare.Selection
}

func New(cfg Config, deps Deps) (*Session, error) {
	eng, err := filter.NewEngine(cfg.FilterMemoSize)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:        uuid.NewString(),
		log:       deps.Log,
		indexRes:  cfg.IndexRes,
		mapView:   deps.Map,
		layer:     deps.Layer,
		presenter: deps.Presenter,
		filt:      eng,
		markers:   markers.NewCache(deps.Factory),
		filterDeb: newDebouncer(cfg.FilterDebounce),
		searchDeb: newDebouncer(cfg.SearchDebounce),
		viewDeb:   newDebouncer(cfg.ViewportDebounce),
		store:     store.New(),
		page:      pagination.New(cfg.PageSize),
	}
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Load fetches all datasets, builds the spatial index and performs the
// first render. Nothing is materialized before every fetch settles.
func (s *Session) Load(ctx context.Context, loader *dataset.Loader, sources []dataset.Source) error {
	st, err := loader.Load(ctx, sources)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.store = st
	// events fired before load settle memoize results against the old
	// store; those entries must not survive the swap
	s.filt.Invalidate()
	ix, ixErr := h3index.Build(st.All(), s.indexRes)
	if ixErr != nil {
		// the window manager falls back to the full scan
		s.log.Warn("spatial index unavailable", "err", ixErr)
	} else {
		s.window.Index = ix
	}
	s.mu.Unlock()

	s.log.Info("session ready", "session_id", s.id, "points", st.Len())
	s.applyFilters()
	return nil
}

// SetCityFilter updates the city criterion; the pipeline run is
// debounced so rapid changes collapse to the last one.
func (s *Session) SetCityFilter(city string) {
	s.mu.Lock()
	s.criteria.City = city
	s.mu.Unlock()
	s.filterDeb.trigger(s.applyFilters)
}

func (s *Session) SetCategoryFilter(cat model.Category) {
	s.mu.Lock()
	s.criteria.Category = cat
	s.mu.Unlock()
	s.filterDeb.trigger(s.applyFilters)
}

func (s *Session) SetWifiFilter(required *bool) {
	s.mu.Lock()
	s.criteria.Wifi = required
	s.mu.Unlock()
	s.filterDeb.trigger(s.applyFilters)
}

// SetSearchText uses the longer debounce window since it fires per
// keystroke.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	s.criteria.Search = text
	s.mu.Unlock()
	s.searchDeb.trigger(s.applyFilters)
}

// ResetFilters clears every criterion and recenters on the default
// view immediately.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	s.criteria = model.Criteria{}
	s.mu.Unlock()
	s.applyFilters()
	if paris, ok := cities.Lookup("Paris"); ok {
		s.mapView.SetView(paris.Lat, paris.Lon, 13)
	}
}

// ViewportChanged reacts to pan/zoom; recomputation is debounced
// because containment over the filtered set is comparatively costly.
func (s *Session) ViewportChanged() {
	s.viewDeb.trigger(s.refreshViewport)
}

// LoadMore reveals one more list page. The map window is unaffected.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pagination.LoadMore(s.page)
	s.renderListLocked()
}

// ToggleCompare flips the point's membership in the comparison set.
// Exceeding the bound leaves the selection unchanged and surfaces a
// notice.
func (s *Session) ToggleCompare(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.FindByID(id)
	if !ok {
		return nil
	}
	if _, err := s.selection.Toggle(p); err != nil {
		s.presenter.Notify("comparison is limited to 4 spots")
		return err
	}
	s.renderListLocked()
	return nil
}

// Compare scores the selection and recommends the best point.
func (s *Session) Compare() (compare.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.selection.Compare()
	if err != nil {
		s.presenter.Notify("select at least 2 spots to compare")
		return compare.Result{}, err
	}
	return res, nil
}

// OpenDetail shows the detail panel for one point.
func (s *Session) OpenDetail(id string) {
	s.mu.Lock()
	p, ok := s.store.FindByID(id)
	selected := s.selection.Contains(id)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.presenter.ShowDetail(render.ItemFor(p, selected))
}

// Criteria returns a snapshot of the active filters.
func (s *Session) Criteria() model.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Flush runs any pending debounced work immediately. Intended for
// shutdown and tests.
func (s *Session) Flush() {
	s.filterDeb.flush()
	s.searchDeb.flush()
	s.viewDeb.flush()
}

// Close drops pending debounced work without running it.
func (s *Session) Close() {
	s.filterDeb.stop()
	s.searchDeb.stop()
	s.viewDeb.stop()
}

// applyFilters is the full pipeline reaction to a criteria change:
// reset pagination, re-filter, recenter, rewindow, rematerialize.
func (s *Session) applyFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = pagination.ResetOnFilterChange(s.page)
	filtered := s.filt.Filter(s.store.All(), s.criteria)

	s.log.Debug("filters applied",
		"session_id", s.id,
		"matched", len(filtered),
		"total", s.store.Len())

	s.centerMapLocked(filtered)
	s.materializeLocked(filtered)
	s.renderListLocked()
}

// refreshViewport rewindows the current filtered set against the new
// map bounds. The memo makes the re-filter a cache hit.
func (s *Session) refreshViewport() {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filt.Filter(s.store.All(), s.criteria)
	s.materializeLocked(filtered)
}

func (s *Session) materializeLocked(filtered []model.Point) {
	vp := model.Viewport{Bounds: s.mapView.Bounds(), Zoom: s.mapView.Zoom()}
	visible := s.window.ComputeVisible(filtered, vp)
	s.markers.Materialize(s.layer, visible)
}

func (s *Session) centerMapLocked(filtered []model.Point) {
	if s.criteria.City != "" {
		if c, ok := cities.Lookup(s.criteria.City); ok {
			s.mapView.SetView(c.Lat, c.Lon, 12)
			return
		}
	}
	if b, ok := model.BoundsOf(filtered); ok {
		s.mapView.FitBounds(b, render.FitOptions{Padding: 50, MaxZoom: 15})
	}
}

func (s *Session) renderListLocked() {
	filtered := s.filt.Filter(s.store.All(), s.criteria)
	page := pagination.VisiblePage(filtered, s.page)

	items := make([]render.ListItem, 0, len(page))
	for _, p := range page {
		items = append(items, render.ItemFor(p, s.selection.Contains(p.ID)))
	}
	s.presenter.RenderList(items)
}
