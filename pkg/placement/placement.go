// Package placement decides where a dragged item lands among the children of
// a scope. It only compares positions along the drop axis; the positions come
// from a Geometry supplied by the front-end.
package placement

import "math"

// Side says whether the dragged item goes before or after the closest sibling.
type Side string

const (
	Before Side = "before"
	After  Side = "after"
)

// Candidate is a sibling with the center of its box on the drop axis.
type Candidate struct {
	ID     string
	Center float64
}

// Placement is the outcome of Resolve. An empty Closest means append at the
// end of the scope.
type Placement struct {
	Closest string
	Side    Side
}

// Append is the placement that puts an item after every existing sibling.
var Append = Placement{}

// IsAppend reports whether the placement has no anchor sibling.
func (p Placement) IsAppend() bool {
	return p.Closest == ""
}

// Resolve picks the candidate with the smallest absolute distance to target.
// On ties the earlier candidate wins. The side is Before when target lies
// above the winner's center.
func Resolve(candidates []Candidate, target float64) Placement {
	best := -1
	bestDistance := math.Inf(1)
	var bestOffset float64
	for idx, candidate := range candidates {
		offset := target - candidate.Center
		distance := math.Abs(offset)
		if distance < bestDistance {
			best = idx
			bestDistance = distance
			bestOffset = offset
		}
	}
	if best < 0 {
		return Append
	}
	side := After
	if bestOffset < 0 {
		side = Before
	}
	return Placement{Closest: candidates[best].ID, Side: side}
}

// ResolveSiblings builds candidates from the geometry of each sibling id and
// resolves target against them. Siblings the geometry does not know about are
// skipped.
func ResolveSiblings(siblings []string, geometry Geometry, target float64) Placement {
	if geometry == nil {
		return Append
	}
	candidates := make([]Candidate, 0, len(siblings))
	for _, id := range siblings {
		box, ok := geometry.Bounds(id)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{ID: id, Center: box.Center()})
	}
	return Resolve(candidates, target)
}
