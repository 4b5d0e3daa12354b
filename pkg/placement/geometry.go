package placement

// Box is the extent of a rendered item on the drop axis.
type Box struct {
	Top    float64
	Height float64
}

// Center returns the midpoint of the box.
func (b Box) Center() float64 {
	return b.Top + b.Height/2
}

// Geometry reports where items are currently rendered.
type Geometry interface {
	Bounds(id string) (Box, bool)
}

// StaticGeometry is a fixed Geometry keyed by descriptor id.
type StaticGeometry map[string]Box

// Bounds implements Geometry.
func (g StaticGeometry) Bounds(id string) (Box, bool) {
	box, ok := g[id]
	return box, ok
}

// Stacked lays ids out top to bottom, each with the given height. Front-ends
// without real layout (the terminal composer, tests) use it to reuse the
// resolver.
func Stacked(height float64, ids ...string) StaticGeometry {
	geometry := make(StaticGeometry, len(ids))
	for idx, id := range ids {
		geometry[id] = Box{Top: float64(idx) * height, Height: height}
	}
	return geometry
}
