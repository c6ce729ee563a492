// Package appgrid renders a pagergrid.Grid as a fyne widget: a horizontally
// paged launcher grid whose shortcuts can be long-pressed and dragged to a
// new position, across pages if the pointer is held near a screen edge.
package appgrid

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xappgrid/config"
	"github.com/alexballas/xappgrid/pagergrid"
)

// AppGrid is the widget. All methods must be called on the fyne event
// goroutine.
type AppGrid struct {
	widget.BaseWidget

	grid  *pagergrid.Grid
	cfg   config.Config
	sched pagergrid.Scheduler
	now   func() time.Time
	log   *slog.Logger

	onReordered   func(id, from, to int)
	onPageChanged func(page int)

	indicator *pageIndicator
	wheel     wheelStepper

	// Long-press tracking.
	pressTimer pagergrid.Timer
	pressPos   fyne.Position
	pointer    fyne.Position

	// Pan tracking for drags that did not start on a long press.
	panning  bool
	lastPan  time.Time
	velocity float32

	lastPage     int
	restorePage  int
	restoredPage bool
}

// NewAppGrid builds the widget over items.
func NewAppGrid(items []pagergrid.ShortcutItem, opts Options) (*AppGrid, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With(slog.String("component", "appgrid"))

	a := &AppGrid{
		cfg:           cfg,
		sched:         opts.Scheduler,
		now:           opts.Now,
		log:           log,
		onReordered:   opts.OnReordered,
		onPageChanged: opts.OnPageChanged,
		indicator:     newPageIndicator(),
		restorePage:   -1,
	}
	if a.sched == nil {
		a.sched = fyneScheduler{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	animator := opts.Animator
	if animator == nil {
		animator = fyneAnimator{duration: func() time.Duration { return a.cfg.Animation() }}
	}

	g, err := pagergrid.New(items, pagergrid.Options{
		Geometry:        cfg.Geometry(fyne.Size{}),
		EdgeThreshold:   cfg.EdgeThreshold,
		AutoScrollDelay: cfg.AutoScrollDelay(),
		Scheduler:       a.sched,
		Animator:        animator,
		Now:             a.now,
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	a.grid = g
	g.Store().Subscribe(a.storeChanged)
	g.OnChange(a.Refresh)
	g.Scroll().OnChange(a.scrollChanged)

	if app := fyne.CurrentApp(); app != nil {
		a.restorePage = app.Preferences().IntWithFallback(currentPageKey, -1)
	}

	a.ExtendBaseWidget(a)
	return a, nil
}

// Grid exposes the underlying engine.
func (a *AppGrid) Grid() *pagergrid.Grid {
	return a.grid
}

func (a *AppGrid) CreateRenderer() fyne.WidgetRenderer {
	return newAppGridRenderer(a)
}

// SetConfig applies a new configuration, typically from a file reload.
// Invalid configurations are rejected and the current one kept.
func (a *AppGrid) SetConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := a.grid.SetGeometry(cfg.Geometry(a.grid.Geometry().Viewport)); err != nil {
		return err
	}
	a.cfg = cfg
	a.grid.Drag().SetOptions(pagergrid.DragOptions{
		EdgeThreshold:   cfg.EdgeThreshold,
		AutoScrollDelay: cfg.AutoScrollDelay(),
		Now:             a.now,
	})
	return nil
}

// ScrollToPage animates to page n.
func (a *AppGrid) ScrollToPage(n int) error {
	return a.grid.Scroll().ScrollToPage(n)
}

// CurrentPage returns the page the grid is settled on.
func (a *AppGrid) CurrentPage() int {
	return a.grid.ScrollState().CurrentPage
}

// Hide cancels any drag so no tile stays dimmed while hidden.
func (a *AppGrid) Hide() {
	a.cancelInteraction()
	a.BaseWidget.Hide()
}

var (
	_ fyne.Draggable    = (*AppGrid)(nil)
	_ fyne.Scrollable   = (*AppGrid)(nil)
	_ desktop.Mouseable = (*AppGrid)(nil)
	_ mobile.Touchable  = (*AppGrid)(nil)
)

func (a *AppGrid) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	a.pointerDown(e.Position)
}

func (a *AppGrid) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	a.pointerUp(e.Position)
}

func (a *AppGrid) TouchDown(e *mobile.TouchEvent) {
	a.pointerDown(e.Position)
}

func (a *AppGrid) TouchUp(e *mobile.TouchEvent) {
	a.pointerUp(e.Position)
}

func (a *AppGrid) TouchCancel(*mobile.TouchEvent) {
	a.cancelInteraction()
}

func (a *AppGrid) Dragged(e *fyne.DragEvent) {
	a.pointer = e.Position
	drag := a.grid.Drag()
	if drag.Dragging() {
		if err := drag.Move(e.Position); err != nil {
			a.log.Debug("drag move ignored", slog.Any("err", err))
		}
		return
	}

	if a.pressTimer != nil {
		if distance(e.Position, a.pressPos) < longPressSlop {
			return
		}
		a.cancelPress()
	}

	now := a.now()
	if a.panning {
		if dt := now.Sub(a.lastPan).Seconds(); dt > 0 {
			a.velocity = float32(float64(-e.Dragged.DX) / dt)
		}
	}
	a.panning = true
	a.lastPan = now
	a.grid.Scroll().DragBy(-e.Dragged.DX)
}

func (a *AppGrid) DragEnd() {
	a.cancelPress()
	if a.grid.Drag().Dragging() {
		a.drop(a.pointer)
		return
	}
	a.endPan()
}

// Scrolled steps whole pages with the mouse wheel or a touchpad swipe.
func (a *AppGrid) Scrolled(e *fyne.ScrollEvent) {
	if a.grid.Drag().Dragging() {
		return
	}
	steps := a.wheel.add(e.Scrolled.DX, e.Scrolled.DY)
	if steps == 0 {
		return
	}
	pages := a.grid.Scroll().PageCount()
	if pages == 0 {
		a.wheel.reset()
		return
	}
	target := min(max(a.CurrentPage()+steps, 0), pages-1)
	if err := a.ScrollToPage(target); err != nil {
		a.log.Debug("wheel scroll rejected", slog.Any("err", err))
	}
}

func (a *AppGrid) pointerDown(pos fyne.Position) {
	a.cancelPress()
	a.pointer = pos
	a.pressPos = pos
	id, ok := a.itemAt(pos)
	if !ok {
		return
	}
	a.pressTimer = a.sched.AfterFunc(a.cfg.LongPress(), func() {
		a.longPressed(id)
	})
}

func (a *AppGrid) pointerUp(pos fyne.Position) {
	a.cancelPress()
	if a.grid.Drag().Dragging() {
		a.drop(pos)
	}
}

func (a *AppGrid) longPressed(id int) {
	if a.pressTimer == nil || a.panning {
		return
	}
	a.pressTimer = nil
	if err := a.grid.Drag().Start(id, a.pointer); err != nil {
		a.log.Debug("long press ignored", slog.Int("id", id), slog.Any("err", err))
	}
}

func (a *AppGrid) drop(pos fyne.Position) {
	if err := a.grid.Drag().Drop(pos); err != nil {
		a.log.Debug("drop ignored", slog.Any("err", err))
	}
}

func (a *AppGrid) endPan() {
	if !a.panning {
		return
	}
	a.panning = false
	v := a.velocity
	a.velocity = 0
	a.grid.Scroll().Release(v)
}

func (a *AppGrid) cancelPress() {
	if a.pressTimer != nil {
		a.pressTimer.Stop()
		a.pressTimer = nil
	}
}

func (a *AppGrid) cancelInteraction() {
	a.cancelPress()
	a.grid.Drag().Cancel()
	a.endPan()
}

// itemAt hit-tests a widget position against the current page.
func (a *AppGrid) itemAt(pos fyne.Position) (int, bool) {
	st := a.grid.ScrollState()
	r, ok := a.grid.CurrentLayout().HitTest(fyne.NewPos(pos.X+st.Offset, pos.Y), st.CurrentPage)
	return r.ItemID, ok
}

func (a *AppGrid) storeChanged(c pagergrid.Change) {
	if c.Kind == pagergrid.ChangeMoved && a.onReordered != nil && a.grid.Drag().Dragging() {
		a.onReordered(c.ID, c.From, c.To)
	}
}

func (a *AppGrid) scrollChanged(st pagergrid.ScrollState) {
	a.indicator.setState(a.grid.Scroll().PageCount(), st.CurrentPage, st.IsAnimating)
	if st.IsAnimating || a.panning || st.CurrentPage == a.lastPage {
		return
	}
	a.lastPage = st.CurrentPage
	if app := fyne.CurrentApp(); app != nil {
		app.Preferences().SetInt(currentPageKey, st.CurrentPage)
	}
	if a.onPageChanged != nil {
		a.onPageChanged(st.CurrentPage)
	}
}

// restoreSavedPage jumps to the page remembered from the last run once the
// first layout produced pages.
func (a *AppGrid) restoreSavedPage() {
	if a.restoredPage || a.grid.Scroll().PageCount() == 0 {
		return
	}
	a.restoredPage = true
	if a.restorePage <= 0 {
		return
	}
	err := a.ScrollToPage(a.restorePage)
	if errors.Is(err, pagergrid.ErrOutOfRange) {
		a.log.Debug("saved page no longer exists", slog.Int("page", a.restorePage))
	}
}

func distance(a, b fyne.Position) float32 {
	return float32(math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)))
}
