package pagergrid

import (
	"fmt"
	"image/color"
	"slices"
	"sync"
)

// ShortcutItem is one application shortcut shown in the grid.
type ShortcutItem struct {
	ID        int
	Title     string
	Color     color.Color
	IsDragged bool
}

// ChangeKind tells subscribers what kind of mutation happened.
type ChangeKind int

const (
	ChangeReset ChangeKind = iota
	ChangeMoved
	ChangeAdded
	ChangeRemoved
	ChangeDragged
)

// Change describes a single store mutation. From and To are positions; they
// are -1 when they do not apply.
type Change struct {
	Kind ChangeKind
	ID   int
	From int
	To   int
}

// Store is the ordered sequence of shortcuts. Order in the store is display
// order and ID is the only identity used for lookups.
type Store struct {
	items []ShortcutItem

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

// NewStore creates a store holding a copy of items.
func NewStore(items []ShortcutItem) (*Store, error) {
	s := &Store{subs: make(map[int]func(Change))}
	if err := s.set(items); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) set(items []ShortcutItem) error {
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("id %d: %w", it.ID, ErrDuplicateID)
		}
		seen[it.ID] = struct{}{}
	}
	s.items = slices.Clone(items)
	return nil
}

// Reset replaces the whole list.
func (s *Store) Reset(items []ShortcutItem) error {
	if err := s.set(items); err != nil {
		return err
	}
	s.publish(Change{Kind: ChangeReset, From: -1, To: -1})
	return nil
}

func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a snapshot of the current order.
func (s *Store) Items() []ShortcutItem {
	return slices.Clone(s.items)
}

// At returns the item at position i.
func (s *Store) At(i int) (ShortcutItem, bool) {
	if i < 0 || i >= len(s.items) {
		return ShortcutItem{}, false
	}
	return s.items[i], true
}

// IndexOf returns the position of id, or -1.
func (s *Store) IndexOf(id int) int {
	return slices.IndexFunc(s.items, func(it ShortcutItem) bool { return it.ID == id })
}

func (s *Store) Get(id int) (ShortcutItem, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return ShortcutItem{}, false
	}
	return s.items[i], true
}

// Add appends a shortcut at the end of the list.
func (s *Store) Add(item ShortcutItem) error {
	if s.IndexOf(item.ID) >= 0 {
		return fmt.Errorf("id %d: %w", item.ID, ErrDuplicateID)
	}
	s.items = append(s.items, item)
	s.publish(Change{Kind: ChangeAdded, ID: item.ID, From: -1, To: len(s.items) - 1})
	return nil
}

func (s *Store) Remove(id int) error {
	i := s.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("id %d: %w", id, ErrUnknownItem)
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.publish(Change{Kind: ChangeRemoved, ID: id, From: i, To: -1})
	return nil
}

// Move removes the item at from and reinserts it at to. Items in between
// shift by one position.
func (s *Store) Move(from, to int) error {
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		return fmt.Errorf("move %d -> %d with %d items: %w", from, to, len(s.items), ErrOutOfRange)
	}
	if from == to {
		return nil
	}
	it := s.items[from]
	s.items = slices.Insert(slices.Delete(s.items, from, from+1), to, it)
	s.publish(Change{Kind: ChangeMoved, ID: it.ID, From: from, To: to})
	return nil
}

// MoveID relocates the item with the given id to position to.
func (s *Store) MoveID(id, to int) error {
	from := s.IndexOf(id)
	if from < 0 {
		return fmt.Errorf("id %d: %w", id, ErrUnknownItem)
	}
	return s.Move(from, to)
}

// SetDragged flips the dimming flag of one item.
func (s *Store) SetDragged(id int, dragged bool) error {
	i := s.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("id %d: %w", id, ErrUnknownItem)
	}
	if s.items[i].IsDragged == dragged {
		return nil
	}
	s.items[i].IsDragged = dragged
	s.publish(Change{Kind: ChangeDragged, ID: id, From: i, To: i})
	return nil
}

// Subscribe registers fn for every mutation. The returned func removes it.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Change))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(c Change) {
	s.subMu.Lock()
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	handlers := make([]func(Change), 0, len(keys))
	for _, k := range keys {
		handlers = append(handlers, s.subs[k])
	}
	s.subMu.Unlock()

	for _, h := range handlers {
		h(c)
	}
}
