package pagergrid

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
)

const (
	DefaultEdgeThreshold   float32 = 100
	DefaultAutoScrollDelay         = 1500 * time.Millisecond
)

// Direction of an edge-triggered page change.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// AutoScroll is an armed, not yet fired, page change.
type AutoScroll struct {
	Direction Direction
	ArmedAt   time.Time

	timer Timer
}

// DragSession is the state of the one active drag.
type DragSession struct {
	DraggedID   int
	LastPointer fyne.Position
	HasPointer  bool
	// AutoScroll is nil while no edge timer is armed.
	AutoScroll *AutoScroll
}

// DragOptions tune edge detection.
type DragOptions struct {
	EdgeThreshold   float32
	AutoScrollDelay time.Duration
	Now             func() time.Time
}

// LayoutSource hands out the most recent layout pass.
type LayoutSource interface {
	CurrentLayout() Layout
}

// DragController is the Idle -> Dragging -> Idle reorder state machine.
type DragController struct {
	store  *Store
	scroll *ScrollController
	layout LayoutSource
	sched  Scheduler
	opts   DragOptions

	session *DragSession
	log     *slog.Logger
}

// NewDragController builds an idle controller. sched is required: its
// callbacks must arrive on the goroutine that drives the store and scroll
// controller, so there is no fallback to bare timers.
func NewDragController(store *Store, scroll *ScrollController, layout LayoutSource, sched Scheduler, opts DragOptions, log *slog.Logger) (*DragController, error) {
	if sched == nil {
		return nil, fmt.Errorf("nil scheduler: %w", ErrInvalidConfiguration)
	}
	return &DragController{
		store:  store,
		scroll: scroll,
		layout: layout,
		sched:  sched,
		opts:   opts.withDefaults(),
		log:    componentLogger(log, "drag"),
	}, nil
}

// SetOptions replaces the edge settings. An armed timer keeps its delay.
func (d *DragController) SetOptions(opts DragOptions) {
	if opts.Now == nil {
		opts.Now = d.opts.Now
	}
	d.opts = opts.withDefaults()
}

func (o DragOptions) withDefaults() DragOptions {
	if o.EdgeThreshold <= 0 {
		o.EdgeThreshold = DefaultEdgeThreshold
	}
	if o.AutoScrollDelay <= 0 {
		o.AutoScrollDelay = DefaultAutoScrollDelay
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Dragging reports whether a session is active.
func (d *DragController) Dragging() bool {
	return d.session != nil
}

// Session returns a copy of the active session.
func (d *DragController) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	s := *d.session
	if s.AutoScroll != nil {
		as := *s.AutoScroll
		s.AutoScroll = &as
	}
	return s, true
}

// Start begins dragging itemID. Only valid while idle.
func (d *DragController) Start(itemID int, pointer fyne.Position) error {
	if d.session != nil {
		return fmt.Errorf("start while dragging %d: %w", d.session.DraggedID, ErrDragState)
	}
	if err := d.store.SetDragged(itemID, true); err != nil {
		return err
	}
	d.session = &DragSession{DraggedID: itemID, LastPointer: pointer, HasPointer: true}
	d.log.Debug("drag started", slog.Int("id", itemID))
	return nil
}

// Move handles a pointer move in viewport coordinates: it arms or disarms
// edge paging, hit-tests the current page and reorders the store when the
// pointer is over another item.
func (d *DragController) Move(pointer fyne.Position) error {
	if d.session == nil {
		return fmt.Errorf("move while idle: %w", ErrDragState)
	}
	d.session.LastPointer = pointer
	d.session.HasPointer = true

	l := d.layout.CurrentLayout()
	d.updateEdge(pointer.X, l.Geometry.Viewport.Width)

	hovered, ok := d.hitTest(pointer, l)
	if !ok || hovered.ItemID == d.session.DraggedID {
		return nil
	}
	from := d.store.IndexOf(d.session.DraggedID)
	to := d.store.IndexOf(hovered.ItemID)
	if from < 0 || to < 0 {
		return nil
	}
	d.log.Debug("reorder", slog.Int("id", d.session.DraggedID), slog.Int("from", from), slog.Int("to", to))
	return d.store.Move(from, to)
}

// Drop ends the drag. The item stays wherever the moves left it.
func (d *DragController) Drop(pointer fyne.Position) error {
	if d.session == nil {
		return fmt.Errorf("drop while idle: %w", ErrDragState)
	}
	d.session.LastPointer = pointer
	d.log.Debug("drag dropped", slog.Int("id", d.session.DraggedID))
	d.end()
	return nil
}

// Cancel abandons the drag. It is a no-op while idle.
func (d *DragController) Cancel() {
	if d.session == nil {
		return
	}
	d.log.Debug("drag cancelled", slog.Int("id", d.session.DraggedID))
	d.end()
}

func (d *DragController) end() {
	d.disarm()
	id := d.session.DraggedID
	d.session = nil
	// The item may have been removed mid-drag; nothing left to undim then.
	_ = d.store.SetDragged(id, false)
}

func (d *DragController) hitTest(pointer fyne.Position, l Layout) (PlacedRect, bool) {
	st := d.scroll.State()
	if st.IsAnimating {
		return PlacedRect{}, false
	}
	content := fyne.NewPos(pointer.X+st.Offset, pointer.Y)
	return l.HitTest(content, st.CurrentPage)
}

func (d *DragController) updateEdge(x, viewportWidth float32) {
	var dir Direction
	switch {
	case viewportWidth > 0 && x > viewportWidth-d.opts.EdgeThreshold:
		dir = Forward
	case x < d.opts.EdgeThreshold:
		dir = Backward
	default:
		d.disarm()
		return
	}

	if as := d.session.AutoScroll; as != nil {
		if as.Direction == dir {
			return
		}
		d.disarm()
	}
	d.arm(dir)
}

func (d *DragController) arm(dir Direction) {
	as := &AutoScroll{Direction: dir, ArmedAt: d.opts.Now()}
	as.timer = d.sched.AfterFunc(d.opts.AutoScrollDelay, func() { d.fire(as) })
	d.session.AutoScroll = as
	d.log.Debug("auto-scroll armed", slog.String("direction", dir.String()))
}

func (d *DragController) disarm() {
	if d.session == nil || d.session.AutoScroll == nil {
		return
	}
	d.session.AutoScroll.timer.Stop()
	d.session.AutoScroll = nil
}

func (d *DragController) fire(as *AutoScroll) {
	// A stopped timer may still deliver if it was already queued.
	if d.session == nil || d.session.AutoScroll != as {
		return
	}
	d.session.AutoScroll = nil

	pages := d.scroll.PageCount()
	if pages == 0 {
		return
	}
	target := min(max(d.scroll.State().CurrentPage+int(as.Direction), 0), pages-1)
	d.log.Debug("auto-scroll fired", slog.String("direction", as.Direction.String()), slog.Int("page", target))
	if err := d.scroll.ScrollToPage(target); err != nil {
		d.log.Debug("auto-scroll rejected", slog.Any("err", err))
	}
}
