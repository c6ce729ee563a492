package appgrid

import (
	"image/color"
	"slices"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/alexballas/xappgrid/config"
	"github.com/alexballas/xappgrid/pagergrid"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) pagergrid.Timer {
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	for _, t := range slices.Clone(c.timers) {
		if t.stopped || t.fired || t.at.After(c.now) {
			continue
		}
		t.fired = true
		t.f()
	}
}

type reorder struct{ id, from, to int }

type fixture struct {
	grid     *AppGrid
	clock    *fakeClock
	render   *appGridRenderer
	reorders []reorder
	pages    []int
}

// newFixture lays out ten items on a 2x2 grid of 200px cells, three pages.
func newFixture(t *testing.T, edit func(*config.Config)) *fixture {
	t.Helper()
	test.NewApp()

	cfg := config.Default()
	cfg.Rows, cfg.Columns = 2, 2
	cfg.ColumnGap, cfg.RowGap, cfg.PageGap = 0, 0, 0
	cfg.PaddingHorizontal, cfg.PaddingVertical = 0, 0
	cfg.ItemCount = 10
	if edit != nil {
		edit(&cfg)
	}

	f := &fixture{clock: &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	g, err := NewAppGrid(cfg.Shortcuts(), Options{
		Config:    cfg,
		Scheduler: f.clock,
		Animator:  pagergrid.InstantAnimator{},
		Now:       f.clock.Now,
		OnReordered: func(id, from, to int) {
			f.reorders = append(f.reorders, reorder{id, from, to})
		},
		OnPageChanged: func(page int) {
			f.pages = append(f.pages, page)
		},
	})
	require.NoError(t, err)
	f.grid = g
	f.render = test.WidgetRenderer(g).(*appGridRenderer)
	g.Resize(fyne.NewSize(400, 400+indicatorHeight))
	return f
}

func (f *fixture) order() []int {
	items := f.grid.Grid().Store().Items()
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, 0),
	}
}

func (f *fixture) longPress(x, y float32) {
	f.grid.MouseDown(mouse(x, y))
	f.clock.Advance(500 * time.Millisecond)
}

func TestAppGrid_Defaults(t *testing.T) {
	test.NewApp()
	g, err := NewAppGrid(nil, Options{})
	require.NoError(t, err)
	require.Equal(t, config.Default().Columns, g.Grid().Geometry().Columns)
	require.Equal(t, 0, g.CurrentPage())
}

func TestAppGrid_RejectsInvalidConfig(t *testing.T) {
	test.NewApp()
	cfg := config.Default()
	cfg.Rows = 0
	_, err := NewAppGrid(nil, Options{Config: cfg})
	require.ErrorIs(t, err, pagergrid.ErrInvalidConfiguration)
}

func TestAppGrid_LongPressDragReorders(t *testing.T) {
	f := newFixture(t, nil)

	f.longPress(100, 100)
	require.True(t, f.grid.Grid().Drag().Dragging())
	it, _ := f.grid.Grid().Store().Get(1)
	require.True(t, it.IsDragged)

	f.grid.Dragged(drag(250, 250, 150))
	require.Equal(t, []int{2, 3, 4, 1, 5, 6, 7, 8, 9, 10}, f.order())
	require.Equal(t, []reorder{{1, 0, 3}}, f.reorders)

	f.grid.MouseUp(mouse(250, 250))
	require.False(t, f.grid.Grid().Drag().Dragging())
	it, _ = f.grid.Grid().Store().Get(1)
	require.False(t, it.IsDragged)
}

func TestAppGrid_ShortPressDoesNotDrag(t *testing.T) {
	f := newFixture(t, nil)

	f.grid.MouseDown(mouse(100, 100))
	f.clock.Advance(200 * time.Millisecond)
	f.grid.MouseUp(mouse(100, 100))
	f.clock.Advance(time.Second)

	require.False(t, f.grid.Grid().Drag().Dragging())
}

func TestAppGrid_PressOnEmptySpace(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.ItemCount = 1 })

	f.longPress(300, 300)
	require.False(t, f.grid.Grid().Drag().Dragging())
}

func TestAppGrid_MovementCancelsLongPress(t *testing.T) {
	f := newFixture(t, nil)

	f.grid.MouseDown(mouse(100, 100))
	// Within the slop the press survives.
	f.grid.Dragged(drag(104, 100, 4))
	require.Zero(t, f.grid.Grid().ScrollState().Offset)

	f.grid.Dragged(drag(60, 100, -44))
	f.clock.Advance(time.Second)
	require.False(t, f.grid.Grid().Drag().Dragging())
	require.Equal(t, float32(44), f.grid.Grid().ScrollState().Offset)
}

func TestAppGrid_PanAndRelease(t *testing.T) {
	f := newFixture(t, nil)

	f.grid.Dragged(drag(300, 100, -150))
	f.clock.Advance(10 * time.Millisecond)
	f.grid.Dragged(drag(200, 100, -100))
	require.Equal(t, float32(250), f.grid.Grid().ScrollState().Offset)
	require.Equal(t, 1, f.grid.CurrentPage())

	f.grid.DragEnd()
	st := f.grid.Grid().ScrollState()
	require.Equal(t, float32(400), st.Offset)
	require.False(t, st.IsAnimating)
	require.Equal(t, []int{1}, f.pages)
	require.Equal(t, 1, fyne.CurrentApp().Preferences().Int(currentPageKey))
}

func TestAppGrid_PanBelowHalfSnapsBack(t *testing.T) {
	f := newFixture(t, nil)

	f.grid.Dragged(drag(300, 100, -120))
	f.grid.DragEnd()

	require.Zero(t, f.grid.Grid().ScrollState().Offset)
	require.Equal(t, 0, f.grid.CurrentPage())
	require.Empty(t, f.pages)
}

func TestAppGrid_EdgeHoldFlipsPage(t *testing.T) {
	f := newFixture(t, nil)

	f.longPress(100, 100)
	f.grid.Dragged(drag(380, 100, 280))
	f.clock.Advance(1499 * time.Millisecond)
	require.Equal(t, 0, f.grid.CurrentPage())

	f.clock.Advance(time.Millisecond)
	require.Equal(t, 1, f.grid.CurrentPage())
	require.True(t, f.grid.Grid().Drag().Dragging())

	// Second slot of page 1.
	f.grid.Dragged(drag(250, 100, -130))
	require.Equal(t, 5, f.grid.Grid().Store().IndexOf(1))
}

func TestAppGrid_CancelPaths(t *testing.T) {
	t.Run("hide", func(t *testing.T) {
		f := newFixture(t, nil)
		f.longPress(100, 100)
		f.grid.Hide()
		require.False(t, f.grid.Grid().Drag().Dragging())
		it, _ := f.grid.Grid().Store().Get(1)
		require.False(t, it.IsDragged)
	})

	t.Run("touch cancel", func(t *testing.T) {
		f := newFixture(t, nil)
		f.grid.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)}})
		f.clock.Advance(500 * time.Millisecond)
		require.True(t, f.grid.Grid().Drag().Dragging())

		f.grid.TouchCancel(&mobile.TouchEvent{})
		require.False(t, f.grid.Grid().Drag().Dragging())
		require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, f.order())
	})

	t.Run("drag end drops", func(t *testing.T) {
		f := newFixture(t, nil)
		f.longPress(100, 100)
		f.grid.Dragged(drag(300, 100, 200))
		f.grid.DragEnd()
		require.False(t, f.grid.Grid().Drag().Dragging())
		require.Equal(t, 1, f.grid.Grid().Store().IndexOf(1))
	})
}

func TestAppGrid_WheelPaging(t *testing.T) {
	f := newFixture(t, nil)

	f.grid.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -20)})
	require.Equal(t, 0, f.grid.CurrentPage())
	f.grid.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -20)})
	require.Equal(t, 1, f.grid.CurrentPage())

	f.grid.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -200)})
	require.Equal(t, 2, f.grid.CurrentPage())

	f.grid.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 40)})
	require.Equal(t, 1, f.grid.CurrentPage())
}

func TestAppGrid_RestoresSavedPage(t *testing.T) {
	test.NewApp()
	fyne.CurrentApp().Preferences().SetInt(currentPageKey, 2)

	cfg := config.Default()
	cfg.Rows, cfg.Columns = 2, 2
	cfg.PaddingHorizontal, cfg.PaddingVertical = 0, 0
	cfg.ItemCount = 10
	g, err := NewAppGrid(cfg.Shortcuts(), Options{
		Config:   cfg,
		Animator: pagergrid.InstantAnimator{},
	})
	require.NoError(t, err)
	g.Resize(fyne.NewSize(400, 400+indicatorHeight))

	require.Equal(t, 2, g.CurrentPage())
}

func TestAppGrid_SetConfig(t *testing.T) {
	f := newFixture(t, nil)
	require.Equal(t, 3, f.grid.Grid().Scroll().PageCount())

	bad := config.Default()
	bad.Columns = -1
	require.ErrorIs(t, f.grid.SetConfig(bad), pagergrid.ErrInvalidConfiguration)
	require.Equal(t, 3, f.grid.Grid().Scroll().PageCount())

	cfg := config.Default()
	cfg.Rows, cfg.Columns = 2, 4
	cfg.PaddingHorizontal, cfg.PaddingVertical = 0, 0
	require.NoError(t, f.grid.SetConfig(cfg))
	require.Equal(t, 2, f.grid.Grid().Scroll().PageCount())
	require.Equal(t, float32(100), f.grid.Grid().CurrentLayout().ItemSize.Width)
}

func TestAppGridRenderer_Tiles(t *testing.T) {
	f := newFixture(t, nil)
	require.Len(t, f.render.tiles, 10)

	for id := 1; id <= 10; id++ {
		require.Equal(t, id <= 4, f.render.tiles[id].Visible(), "tile %d", id)
	}
	require.Equal(t, fyne.NewPos(200, 200), f.render.tiles[4].Position())
	require.Equal(t, fyne.NewSize(200, 200), f.render.tiles[4].Size())
	// The indicator is always drawn on top.
	objs := f.render.Objects()
	require.Equal(t, fyne.CanvasObject(f.grid.indicator), objs[len(objs)-1])

	require.NoError(t, f.grid.ScrollToPage(1))
	require.False(t, f.render.tiles[1].Visible())
	require.True(t, f.render.tiles[5].Visible())
	require.Equal(t, fyne.NewPos(0, 0), f.render.tiles[5].Position())
}

func TestAppGridRenderer_DraggedTileDimmedAndOnTop(t *testing.T) {
	f := newFixture(t, nil)
	f.longPress(100, 100)

	tile := f.render.tiles[1]
	require.True(t, tile.dragged)
	_, _, _, a := tile.bg.FillColor.RGBA()
	require.Equal(t, uint32(draggedAlpha)*0x101, a)

	objs := f.render.Objects()
	require.Equal(t, fyne.CanvasObject(tile), objs[len(objs)-2])

	f.grid.MouseUp(mouse(100, 100))
	_, _, _, a = tile.bg.FillColor.RGBA()
	require.Equal(t, uint32(0xffff), a)
}

func TestAppGridRenderer_TracksStore(t *testing.T) {
	f := newFixture(t, nil)
	store := f.grid.Grid().Store()

	require.NoError(t, store.Remove(3))
	require.NotContains(t, f.render.tiles, 3)

	require.NoError(t, store.Add(pagergrid.ShortcutItem{ID: 42, Title: "42", Color: color.Black}))
	require.Contains(t, f.render.tiles, 42)
	require.Equal(t, "42", f.render.tiles[42].label.Text)
}

func TestPageIndicator(t *testing.T) {
	f := newFixture(t, nil)
	ind := f.grid.indicator
	require.Equal(t, 3, ind.pages)
	require.Equal(t, 0, ind.current)

	require.NoError(t, f.grid.ScrollToPage(2))
	require.Equal(t, 2, ind.current)
	require.False(t, ind.animating)
	require.Len(t, test.WidgetRenderer(ind).Objects(), 3)

	require.NoError(t, f.grid.Grid().Store().Reset(nil))
	require.Equal(t, 0, ind.pages)
	require.Empty(t, test.WidgetRenderer(ind).Objects())
}
