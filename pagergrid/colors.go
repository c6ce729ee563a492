package pagergrid

import (
	"image/color"
	"math/rand/v2"
	"slices"
	"strconv"

	"golang.org/x/image/colornames"
)

// ColorSource hands out tile colors. Sources are owned by the caller.
type ColorSource interface {
	Next() color.Color
}

// RandomColors produces random opaque colors from a seeded generator.
type RandomColors struct {
	rnd *rand.Rand
}

func NewRandomColors(seed uint64) *RandomColors {
	return &RandomColors{rnd: rand.New(rand.NewPCG(seed, seed))}
}

func (r *RandomColors) Next() color.Color {
	v := r.rnd.Uint32()
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// NamedColors picks colors from the SVG 1.1 palette.
type NamedColors struct {
	rnd   *rand.Rand
	names []string
}

func NewNamedColors(seed uint64) *NamedColors {
	names := slices.Clone(colornames.Names)
	return &NamedColors{rnd: rand.New(rand.NewPCG(seed, seed)), names: names}
}

func (n *NamedColors) Next() color.Color {
	return colornames.Map[n.names[n.rnd.IntN(len(n.names))]]
}

// NewShortcuts builds items 1..n titled with their id.
func NewShortcuts(n int, colors ColorSource) []ShortcutItem {
	items := make([]ShortcutItem, n)
	for i := range items {
		id := i + 1
		items[i] = ShortcutItem{ID: id, Title: strconv.Itoa(id), Color: colors.Next()}
	}
	return items
}
