// Package lane finds the road-network lane closest to a point.
package lane

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Lane is a network lane with its shape in network coordinates.
type Lane struct {
	ID    string
	Edge  string
	Shape orb.LineString
}

// Index answers nearest-lane queries by scanning all lanes.
type Index struct {
	lanes []Lane
	bound orb.Bound
}

// NewIndex keeps the lanes with at least one segment, in the given order.
func NewIndex(lanes []Lane) *Index {
	idx := &Index{}
	for _, l := range lanes {
		if len(l.Shape) < 2 {
			continue
		}
		if len(idx.lanes) == 0 {
			idx.bound = l.Shape.Bound()
		} else {
			idx.bound = idx.bound.Union(l.Shape.Bound())
		}
		idx.lanes = append(idx.lanes, l)
	}
	return idx
}

// Len returns the number of indexed lanes.
func (idx *Index) Len() int { return len(idx.lanes) }

// Bound returns the bounding box of all indexed lanes.
func (idx *Index) Bound() orb.Bound { return idx.bound }

// Nearest returns the lane with the smallest planar distance to p. On ties
// the first lane wins. ok is false for an empty index.
func (idx *Index) Nearest(p orb.Point) (best Lane, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, l := range idx.lanes {
		d := planar.DistanceFrom(l.Shape, p)
		if d < dist {
			best, dist, ok = l, d, true
		}
	}
	return best, dist, ok
}
