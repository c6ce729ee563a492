package appgrid

import (
	"log/slog"
	"time"

	"github.com/alexballas/xappgrid/config"
	"github.com/alexballas/xappgrid/pagergrid"
)

const (
	indicatorHeight = 24
	indicatorDot    = 8
	tileMinSize     = 32
	tilePaddingX    = 8
	tilePaddingY    = 12
	// Pointer travel allowed while waiting for a long press.
	longPressSlop = 10
	// Alpha of a tile that is being dragged.
	draggedAlpha   = 26
	currentPageKey = "xappgrid:currentPage"
)

// Options configure an AppGrid. Zero values use the defaults; Scheduler and
// Animator default to fyne timers and fyne animations.
type Options struct {
	Config    config.Config
	Logger    *slog.Logger
	Scheduler pagergrid.Scheduler
	Animator  pagergrid.Animator
	Now       func() time.Time

	// OnReordered is called after a drag moved an item.
	OnReordered func(id, from, to int)
	// OnPageChanged is called when the grid settles on a new page.
	OnPageChanged func(page int)
}
