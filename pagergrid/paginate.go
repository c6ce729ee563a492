package pagergrid

import "fmt"

// Page is a contiguous slice of the store. Pages are derived on demand and
// never stored.
type Page struct {
	Index int
	// Start is the store position of the first item on the page.
	Start int
	Items []ShortcutItem
}

// Slot locates a store position inside the paged grid.
type Slot struct {
	Page  int
	Index int
	Row   int
	Col   int
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("page capacity %d: %w", size, ErrInvalidConfiguration)
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end:end])
	}
	return out, nil
}

// Paginate partitions items into pages of pageCapacity. Every page but the
// last is full.
func Paginate(items []ShortcutItem, pageCapacity int) ([]Page, error) {
	chunks, err := Chunk(items, pageCapacity)
	if err != nil {
		return nil, err
	}
	pages := make([]Page, len(chunks))
	for i, c := range chunks {
		pages[i] = Page{Index: i, Start: i * pageCapacity, Items: c}
	}
	return pages, nil
}

// PageCount is ceil(itemCount / pageCapacity).
func PageCount(itemCount, pageCapacity int) int {
	if pageCapacity < 1 || itemCount <= 0 {
		return 0
	}
	return (itemCount + pageCapacity - 1) / pageCapacity
}

// SlotOf maps a store position to its page, slot, row and column.
func SlotOf(position, rows, columns int) (Slot, error) {
	if rows < 1 || columns < 1 {
		return Slot{}, fmt.Errorf("%dx%d grid: %w", rows, columns, ErrInvalidConfiguration)
	}
	if position < 0 {
		return Slot{}, fmt.Errorf("position %d: %w", position, ErrOutOfRange)
	}
	capacity := rows * columns
	idx := position % capacity
	return Slot{
		Page:  position / capacity,
		Index: idx,
		Row:   idx / columns,
		Col:   idx % columns,
	}, nil
}
