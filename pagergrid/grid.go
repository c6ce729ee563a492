// Package pagergrid lays shortcuts out on fixed-size pages, pages between
// them with snap-to-page scrolling and reorders them by drag and drop.
//
// A Grid is not safe for concurrent use. All calls, and every callback from
// its Scheduler and Animator, must happen on one goroutine: the UI thread, or
// an EventLoop for headless hosts.
package pagergrid

import (
	"errors"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
)

// Options configure a Grid. Zero values fall back to defaults, except
// Scheduler, which is required: use the UI toolkit's timers or an EventLoop.
type Options struct {
	Geometry        Geometry
	EdgeThreshold   float32
	AutoScrollDelay time.Duration

	Scheduler Scheduler
	Animator  Animator
	Now       func() time.Time
	Logger    *slog.Logger
}

// PlacedItem pairs an item with where it is drawn.
type PlacedItem struct {
	Item ShortcutItem
	Rect PlacedRect
}

// PageView is everything needed to draw one page.
type PageView struct {
	Index int
	Items []PlacedItem
}

// Grid composes the store, layout, scroll and drag components.
type Grid struct {
	store  *Store
	scroll *ScrollController
	drag   *DragController

	geo    Geometry
	layout Layout

	listeners []func()
	log       *slog.Logger
}

// New validates the geometry and builds a grid over items. The viewport may
// still be empty; layout is deferred until Resize gives it a size.
func New(items []ShortcutItem, opts Options) (*Grid, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	store, err := NewStore(items)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		store: store,
		geo:   opts.Geometry,
		log:   componentLogger(opts.Logger, "grid"),
	}
	g.scroll = NewScrollController(opts.Animator, opts.Logger)
	g.drag, err = NewDragController(store, g.scroll, g, opts.Scheduler, DragOptions{
		EdgeThreshold:   opts.EdgeThreshold,
		AutoScrollDelay: opts.AutoScrollDelay,
		Now:             opts.Now,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	store.Subscribe(g.storeChanged)
	g.scroll.OnChange(func(ScrollState) { g.notify() })
	g.relayout()
	return g, nil
}

func (g *Grid) Store() *Store {
	return g.store
}

func (g *Grid) Scroll() *ScrollController {
	return g.scroll
}

func (g *Grid) Drag() *DragController {
	return g.drag
}

func (g *Grid) Geometry() Geometry {
	return g.geo
}

func (g *Grid) CurrentLayout() Layout {
	return g.layout
}

func (g *Grid) ScrollState() ScrollState {
	return g.scroll.State()
}

func (g *Grid) OnChange(fn func()) {
	g.listeners = append(g.listeners, fn)
}

func (g *Grid) SetItems(items []ShortcutItem) error {
	return g.store.Reset(items)
}

// Resize sets the viewport and lays the grid out again.
func (g *Grid) Resize(size fyne.Size) {
	if size == g.geo.Viewport {
		return
	}
	g.geo.Viewport = size
	g.relayout()
}

// SetGeometry replaces rows, columns, gaps and padding. An invalid geometry
// is rejected and the previous one kept.
func (g *Grid) SetGeometry(geo Geometry) error {
	if err := geo.Validate(); err != nil {
		return err
	}
	if geo.Viewport.IsZero() {
		geo.Viewport = g.geo.Viewport
	}
	g.geo = geo
	g.relayout()
	return nil
}

// Pages chunks the current order into pages.
func (g *Grid) Pages() []Page {
	pages, _ := Paginate(g.store.items, g.geo.Capacity())
	return pages
}

// PageView returns the items of page i together with their rectangles.
func (g *Grid) PageView(i int) PageView {
	rects := g.layout.PageRects(i)
	v := PageView{Index: i, Items: make([]PlacedItem, 0, len(rects))}
	for _, r := range rects {
		if it, ok := g.store.Get(r.ItemID); ok {
			v.Items = append(v.Items, PlacedItem{Item: it, Rect: r})
		}
	}
	return v
}

// Placed returns every item with its rectangle, in store order.
func (g *Grid) Placed() []PlacedItem {
	out := make([]PlacedItem, 0, len(g.layout.Rects))
	for i, r := range g.layout.Rects {
		if it, ok := g.store.At(i); ok && it.ID == r.ItemID {
			out = append(out, PlacedItem{Item: it, Rect: r})
		}
	}
	return out
}

func (g *Grid) storeChanged(c Change) {
	if c.Kind == ChangeDragged {
		g.notify()
		return
	}
	if c.Kind == ChangeRemoved || c.Kind == ChangeReset {
		if s, ok := g.drag.Session(); ok {
			switch it, found := g.store.Get(s.DraggedID); {
			case !found:
				g.drag.Cancel()
			case !it.IsDragged:
				// A reset that keeps the item replaces its flag too.
				_ = g.store.SetDragged(s.DraggedID, true)
			}
		}
	}
	g.relayout()
}

func (g *Grid) relayout() {
	l, err := ComputeLayout(g.store.items, g.geo)
	if err != nil {
		if !errors.Is(err, ErrLayoutInfeasible) {
			g.log.Error("layout failed", slog.Any("err", err))
		} else {
			g.log.Debug("layout deferred", slog.Any("err", err))
		}
	}
	g.layout = l
	// SetPaging notifies listeners through the scroll OnChange hook.
	g.scroll.SetPaging(l.PageCount, l.PageStride())
}

func (g *Grid) notify() {
	for _, fn := range g.listeners {
		fn()
	}
}
