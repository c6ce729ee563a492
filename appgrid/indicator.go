package appgrid

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// pageIndicator shows one dot per page and highlights the current one.
type pageIndicator struct {
	widget.BaseWidget

	pages     int
	current   int
	animating bool

	dots []*canvas.Circle
}

func newPageIndicator() *pageIndicator {
	p := &pageIndicator{}
	p.ExtendBaseWidget(p)
	return p
}

func (p *pageIndicator) setState(pages, current int, animating bool) {
	if p.pages == pages && p.current == current && p.animating == animating {
		return
	}
	p.pages, p.current, p.animating = pages, current, animating
	p.Refresh()
}

func (p *pageIndicator) CreateRenderer() fyne.WidgetRenderer {
	return &pageIndicatorRenderer{p: p}
}

type pageIndicatorRenderer struct {
	p *pageIndicator
}

func (r *pageIndicatorRenderer) Layout(size fyne.Size) {
	gap := theme.Padding()
	total := float32(len(r.p.dots))*indicatorDot + float32(max(len(r.p.dots)-1, 0))*gap
	x := (size.Width - total) / 2
	y := (size.Height - indicatorDot) / 2
	for _, d := range r.p.dots {
		d.Resize(fyne.NewSquareSize(indicatorDot))
		d.Move(fyne.NewPos(x, y))
		x += indicatorDot + gap
	}
}

func (r *pageIndicatorRenderer) MinSize() fyne.Size {
	n := float32(r.p.pages)
	return fyne.NewSize(n*indicatorDot+max(n-1, 0)*theme.Padding(), indicatorHeight)
}

func (r *pageIndicatorRenderer) Refresh() {
	for len(r.p.dots) < r.p.pages {
		r.p.dots = append(r.p.dots, canvas.NewCircle(color.Transparent))
	}
	r.p.dots = r.p.dots[:r.p.pages]

	active := theme.Color(theme.ColorNamePrimary)
	if r.p.animating {
		active = theme.Color(theme.ColorNameForeground)
	}
	inactive := theme.Color(theme.ColorNameDisabled)
	for i, d := range r.p.dots {
		if i == r.p.current {
			d.FillColor = active
		} else {
			d.FillColor = inactive
		}
		d.Refresh()
	}
	r.Layout(r.p.Size())
}

func (r *pageIndicatorRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(r.p.dots))
	for i, d := range r.p.dots {
		objs[i] = d
	}
	return objs
}

func (r *pageIndicatorRenderer) Destroy() {}
