package layout

import "math"

// Bounds is the axis-aligned box enclosing every position of a layout.
type Bounds struct {
	Left, Right float64
	Bottom, Top float64
}

// Width returns the horizontal span of the box.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// CenterX returns the horizontal center of the box.
func (b Bounds) CenterX() float64 { return (b.Left + b.Right) / 2 }

// Bounds returns the box around all positions, or the zero Bounds for an
// empty layout.
func (r *Result) Bounds() Bounds { return BoundsOf(r.Positions) }

// BoundsOf returns the box around positions, or the zero Bounds when there
// are none.
func BoundsOf(positions map[string]Point) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Left: math.Inf(1), Right: math.Inf(-1),
		Bottom: math.Inf(1), Top: math.Inf(-1),
	}
	for _, p := range positions {
		b.Left = min(b.Left, p.X)
		b.Right = max(b.Right, p.X)
		b.Bottom = min(b.Bottom, p.Y)
		b.Top = max(b.Top, p.Y)
	}
	return b
}

// Depth returns the depth of id in the layout, or -1 if id is not present.
func (r *Result) Depth(id string) int {
	n, ok := r.Graph.Node(id)
	if !ok {
		return -1
	}
	return n.Row
}
