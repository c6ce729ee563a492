package pagergrid

import "errors"

var (
	// ErrInvalidConfiguration is returned for non-positive rows, columns or
	// page capacity and for negative gaps or padding.
	ErrInvalidConfiguration = errors.New("invalid grid configuration")
	// ErrLayoutInfeasible is returned when the viewport is too small to give
	// every item a positive width and height.
	ErrLayoutInfeasible = errors.New("layout infeasible for viewport")
	// ErrOutOfRange is returned when a page index falls outside [0, pageCount).
	ErrOutOfRange = errors.New("page out of range")
	// ErrDuplicateID is returned when a list holds the same id twice.
	ErrDuplicateID = errors.New("duplicate shortcut id")
	// ErrUnknownItem is returned for an id that is not in the store.
	ErrUnknownItem = errors.New("unknown shortcut id")
	// ErrDragState is returned for a drag call that the current state does
	// not allow, such as Move while idle.
	ErrDragState = errors.New("invalid drag state")
)
