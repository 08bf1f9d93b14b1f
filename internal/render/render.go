// Package render declares the capabilities the core consumes from the
// map rendering toolkit and the presentation layer. The engines return
// data only; all element creation happens behind these interfaces.
package render

import "github.com/JeromeFabre77/SpotWork/internal/core/model"

// Icon references a marker icon asset.
type Icon string

// Handle is an opaque renderable marker owned by the toolkit.
type Handle any

// Factory creates marker handles. Creating a handle is expensive;
// callers cache them per point.
type Factory interface {
	CreateMarker(lat, lon float64, icon Icon, title string) Handle
}

// Layer is the active marker display layer. Clear detaches everything
// currently shown in O(1) amortized time.
type Layer interface {
	Clear()
	Attach(h Handle)
}

// FitOptions mirrors the toolkit's fitBounds options.
type FitOptions struct {
	Padding int
	MaxZoom int
}

// MapView exposes the slippy-map state the core reads and drives.
type MapView interface {
	Bounds() model.BBox
	Zoom() int
	SetView(lat, lon float64, zoom int)
	FitBounds(b model.BBox, opts FitOptions)
}

// ListItem is the data-only shape of one list entry.
type ListItem struct {
	ID          string
	Title       string
	Category    model.Category
	Hours       string
	Phone       string
	Address     string
	Website     string
	Description string
	Wifi        bool
	Selected    bool
}

// Presenter renders list entries and user notices.
type Presenter interface {
	RenderList(items []ListItem)
	ShowDetail(item ListItem)
	Notify(msg string)
}

// ItemFor projects a point into its list entry.
func ItemFor(p model.Point, selected bool) ListItem {
	return ListItem{
		ID:          p.ID,
		Title:       p.Name(),
		Category:    p.Category,
		Hours:       p.Attr(model.AttrHours),
		Phone:       p.Attr(model.AttrPhone),
		Address:     p.Attr(model.AttrAddress),
		Website:     p.Attr(model.AttrWebsite),
		Description: p.Attr(model.AttrDescription),
		Wifi:        p.HasWifi(),
		Selected:    selected,
	}
}
