package pagergrid

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
)

// Geometry describes a page of Rows x Columns cells inside a viewport.
type Geometry struct {
	Rows    int
	Columns int

	ColumnGap float32
	RowGap    float32
	PageGap   float32

	PaddingHorizontal float32
	PaddingVertical   float32

	Viewport fyne.Size
}

// Validate rejects geometry that can never be laid out, whatever the viewport.
func (g Geometry) Validate() error {
	if g.Rows < 1 || g.Columns < 1 {
		return fmt.Errorf("%d rows x %d columns: %w", g.Rows, g.Columns, ErrInvalidConfiguration)
	}
	if g.ColumnGap < 0 || g.RowGap < 0 || g.PageGap < 0 {
		return fmt.Errorf("negative gap: %w", ErrInvalidConfiguration)
	}
	if g.PaddingHorizontal < 0 || g.PaddingVertical < 0 {
		return fmt.Errorf("negative padding: %w", ErrInvalidConfiguration)
	}
	return nil
}

// Capacity is the number of items on a full page.
func (g Geometry) Capacity() int {
	return g.Rows * g.Columns
}

// ItemSize returns the floored cell size for the current viewport.
func (g Geometry) ItemSize() (fyne.Size, error) {
	if err := g.Validate(); err != nil {
		return fyne.Size{}, err
	}
	cols, rows := float32(g.Columns), float32(g.Rows)
	w := floor32((g.Viewport.Width - 2*g.PaddingHorizontal - g.ColumnGap*(cols-1)) / cols)
	h := floor32((g.Viewport.Height - 2*g.PaddingVertical - g.RowGap*(rows-1)) / rows)
	if w <= 0 || h <= 0 || g.Viewport.Width <= 0 || g.Viewport.Height <= 0 {
		return fyne.Size{}, fmt.Errorf("viewport %v for %dx%d: %w", g.Viewport, g.Rows, g.Columns, ErrLayoutInfeasible)
	}
	return fyne.NewSize(w, h), nil
}

// PageSize is the content size of one page, padding included.
func (g Geometry) PageSize() (fyne.Size, error) {
	item, err := g.ItemSize()
	if err != nil {
		return fyne.Size{}, err
	}
	return g.pageSize(item), nil
}

func (g Geometry) pageSize(item fyne.Size) fyne.Size {
	cols, rows := float32(g.Columns), float32(g.Rows)
	return fyne.NewSize(
		cols*item.Width+(cols-1)*g.ColumnGap+2*g.PaddingHorizontal,
		rows*item.Height+(rows-1)*g.RowGap+2*g.PaddingVertical,
	)
}

// PlacedRect is where one item is drawn, in content coordinates.
type PlacedRect struct {
	ItemID   int
	Position fyne.Position
	Size     fyne.Size
	Page     int
}

// Contains reports whether p lies inside the rectangle. The right and bottom
// edges are exclusive so neighbouring cells never both match.
func (r PlacedRect) Contains(p fyne.Position) bool {
	return p.X >= r.Position.X && p.X < r.Position.X+r.Size.Width &&
		p.Y >= r.Position.Y && p.Y < r.Position.Y+r.Size.Height
}

// Layout is the output of one layout pass.
type Layout struct {
	Geometry    Geometry
	ItemSize    fyne.Size
	PageSize    fyne.Size
	ContentSize fyne.Size
	PageCount   int
	// Rects are in store order.
	Rects []PlacedRect
}

// PageStride is the horizontal distance between two page origins.
func (l Layout) PageStride() float32 {
	return l.PageSize.Width + l.Geometry.PageGap
}

// PageRects returns the rectangles that belong to page.
func (l Layout) PageRects(page int) []PlacedRect {
	capacity := l.Geometry.Capacity()
	if capacity < 1 || page < 0 || page >= l.PageCount {
		return nil
	}
	start := page * capacity
	end := min(start+capacity, len(l.Rects))
	return l.Rects[start:end:end]
}

// HitTest finds the rectangle on page containing p, where p is in content
// coordinates.
func (l Layout) HitTest(p fyne.Position, page int) (PlacedRect, bool) {
	for _, r := range l.PageRects(page) {
		if r.Contains(p) {
			return r, true
		}
	}
	return PlacedRect{}, false
}

// LayoutPage places the items of a single page. The returned size is the
// content size of that page.
func LayoutPage(page Page, geo Geometry) ([]PlacedRect, fyne.Size, error) {
	item, err := geo.ItemSize()
	if err != nil {
		return nil, fyne.Size{}, err
	}
	pageSize := geo.pageSize(item)
	return placePage(page, geo, item, pageSize), pageSize, nil
}

func placePage(page Page, geo Geometry, item, pageSize fyne.Size) []PlacedRect {
	originX := float32(page.Index) * (pageSize.Width + geo.PageGap)
	rects := make([]PlacedRect, len(page.Items))
	for i, it := range page.Items {
		row, col := i/geo.Columns, i%geo.Columns
		rects[i] = PlacedRect{
			ItemID: it.ID,
			Position: fyne.NewPos(
				originX+geo.PaddingHorizontal+float32(col)*(item.Width+geo.ColumnGap),
				geo.PaddingVertical+float32(row)*(item.Height+geo.RowGap),
			),
			Size: item,
			Page: page.Index,
		}
	}
	return rects
}

// ComputeLayout places every item across all pages. When the viewport is too
// small the returned Layout is empty and the error wraps ErrLayoutInfeasible.
func ComputeLayout(items []ShortcutItem, geo Geometry) (Layout, error) {
	if err := geo.Validate(); err != nil {
		return Layout{Geometry: geo}, err
	}
	item, err := geo.ItemSize()
	if err != nil {
		return Layout{Geometry: geo}, err
	}
	pages, err := Paginate(items, geo.Capacity())
	if err != nil {
		return Layout{Geometry: geo}, err
	}

	pageSize := geo.pageSize(item)
	l := Layout{
		Geometry:  geo,
		ItemSize:  item,
		PageSize:  pageSize,
		PageCount: len(pages),
		Rects:     make([]PlacedRect, 0, len(items)),
	}
	for _, p := range pages {
		l.Rects = append(l.Rects, placePage(p, geo, item, pageSize)...)
	}
	if n := float32(len(pages)); n > 0 {
		l.ContentSize = fyne.NewSize(n*pageSize.Width+(n-1)*geo.PageGap, pageSize.Height)
	}
	return l, nil
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
