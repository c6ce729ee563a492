package appgrid

import "fyne.io/fyne/v2"

type appGridRenderer struct {
	grid *AppGrid

	tiles   map[int]*shortcutTile
	objects []fyne.CanvasObject
}

func newAppGridRenderer(a *AppGrid) *appGridRenderer {
	r := &appGridRenderer{
		grid:  a,
		tiles: make(map[int]*shortcutTile),
	}
	r.Refresh()
	return r
}

func (r *appGridRenderer) Layout(size fyne.Size) {
	a := r.grid
	a.grid.Resize(fyne.NewSize(size.Width, max(size.Height-indicatorHeight, 0)))
	a.restoreSavedPage()
	r.place()
	a.indicator.Resize(fyne.NewSize(size.Width, indicatorHeight))
	a.indicator.Move(fyne.NewPos(0, size.Height-indicatorHeight))
}

func (r *appGridRenderer) MinSize() fyne.Size {
	geo := r.grid.grid.Geometry()
	w := float32(geo.Columns)*tileMinSize + float32(geo.Columns-1)*geo.ColumnGap + 2*geo.PaddingHorizontal
	h := float32(geo.Rows)*tileMinSize + float32(geo.Rows-1)*geo.RowGap + 2*geo.PaddingVertical
	return fyne.NewSize(w, h+indicatorHeight)
}

// Refresh syncs the tiles with the store and repositions them for the
// current scroll offset.
func (r *appGridRenderer) Refresh() {
	a := r.grid
	items := a.grid.Store().Items()

	seen := make(map[int]bool, len(items))
	for _, it := range items {
		seen[it.ID] = true
		if t, ok := r.tiles[it.ID]; ok {
			t.setItem(it)
			continue
		}
		r.tiles[it.ID] = newShortcutTile(it)
	}
	for id := range r.tiles {
		if !seen[id] {
			delete(r.tiles, id)
		}
	}

	st := a.grid.ScrollState()
	a.indicator.setState(a.grid.Scroll().PageCount(), st.CurrentPage, st.IsAnimating)
	r.place()
}

// place moves every tile to its layout slot shifted by the scroll offset.
// Tiles outside the viewport are hidden and the dragged tile is drawn last.
func (r *appGridRenderer) place() {
	a := r.grid
	l := a.grid.CurrentLayout()
	offset := a.grid.ScrollState().Offset
	width := l.Geometry.Viewport.Width

	r.objects = r.objects[:0]
	var dragged fyne.CanvasObject
	for _, rect := range l.Rects {
		t, ok := r.tiles[rect.ItemID]
		if !ok {
			continue
		}
		pos := rect.Position.SubtractXY(offset, 0)
		if pos.X+rect.Size.Width <= 0 || pos.X >= width {
			t.Hide()
			continue
		}
		t.Move(pos)
		t.Resize(rect.Size)
		t.Show()
		if t.dragged {
			dragged = t
			continue
		}
		r.objects = append(r.objects, t)
	}
	if dragged != nil {
		r.objects = append(r.objects, dragged)
	}
	r.objects = append(r.objects, a.indicator)
}

func (r *appGridRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *appGridRenderer) Destroy() {
	r.grid.cancelInteraction()
}
