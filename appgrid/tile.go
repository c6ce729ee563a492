package appgrid

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xappgrid/pagergrid"
)

// shortcutTile draws one shortcut. It handles no input itself so pointer
// events fall through to the AppGrid.
type shortcutTile struct {
	widget.BaseWidget

	id    int
	bg    *canvas.Rectangle
	label *canvas.Text

	dragged bool
}

func newShortcutTile(item pagergrid.ShortcutItem) *shortcutTile {
	t := &shortcutTile{
		id:    item.ID,
		bg:    canvas.NewRectangle(color.Transparent),
		label: canvas.NewText("", color.White),
	}
	t.bg.CornerRadius = theme.InputRadiusSize()
	t.label.Alignment = fyne.TextAlignCenter
	t.label.TextStyle = fyne.TextStyle{Bold: true}
	t.ExtendBaseWidget(t)
	t.setItem(item)
	return t
}

func (t *shortcutTile) CreateRenderer() fyne.WidgetRenderer {
	return &shortcutTileRenderer{tile: t}
}

func (t *shortcutTile) setItem(item pagergrid.ShortcutItem) {
	fill := item.Color
	if fill == nil {
		fill = theme.Color(theme.ColorNamePrimary)
	}
	text := color.Color(color.White)
	if item.IsDragged {
		fill = withAlpha(fill, draggedAlpha)
		text = withAlpha(text, draggedAlpha)
	}

	if t.label.Text == item.Title && t.dragged == item.IsDragged && sameColor(t.bg.FillColor, fill) {
		return
	}
	t.dragged = item.IsDragged
	t.bg.FillColor = fill
	t.label.Text = item.Title
	t.label.Color = text
	t.Refresh()
}

func withAlpha(c color.Color, a uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

type shortcutTileRenderer struct {
	tile *shortcutTile
}

func (r *shortcutTileRenderer) Layout(size fyne.Size) {
	inset := fyne.NewSize(min(tilePaddingX, size.Width/4), min(tilePaddingY, size.Height/4))
	inner := size.Subtract(inset).Subtract(inset)
	r.tile.bg.Move(fyne.NewPos(inset.Width, inset.Height))
	r.tile.bg.Resize(inner)

	r.tile.label.TextSize = min(theme.TextHeadingSize()*1.5, inner.Height/2)
	textSize := r.tile.label.MinSize()
	r.tile.label.Resize(fyne.NewSize(inner.Width, textSize.Height))
	r.tile.label.Move(fyne.NewPos(inset.Width, inset.Height+(inner.Height-textSize.Height)/2))
}

func (r *shortcutTileRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(tileMinSize)
}

func (r *shortcutTileRenderer) Refresh() {
	r.tile.bg.Refresh()
	r.tile.label.Refresh()
}

func (r *shortcutTileRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.tile.bg, r.tile.label}
}

func (r *shortcutTileRenderer) Destroy() {}
