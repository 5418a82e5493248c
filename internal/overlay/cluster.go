package overlay

import "math"

// MinCellSize is the smallest cell size (viewport units) clustering accepts.
// Anything at or below it is finer than a marker and clustering returns nothing.
const MinCellSize = 8.0

type cellKey struct {
	X int
	Y int
}

func keyFor(p Point, cellSize float64) cellKey {
	return cellKey{X: int(math.Floor(p.X / cellSize)), Y: int(math.Floor(p.Y / cellSize))}
}

// clusterState tracks an annotation's screen centre during a single pass.
type clusterState[T LocationItem] struct {
	ann    *Annotation[T]
	center Point
}

func (c *clusterState[T]) merge(item T, p Point) {
	n := float64(c.ann.Count())
	c.ann.add(item)
	total := n + 1
	c.center = Point{
		X: c.center.X*(n/total) + p.X/total,
		Y: c.center.Y*(n/total) + p.Y/total,
	}
}

// Cluster groups items whose projected positions lie within cellSize of an
// existing cluster's centre. Matching is first fit over the 3x3 cell
// neighbourhood in insertion order, so the grouping near thresholds can
// depend on input order.
//
// Items with invalid coordinates, or that project to a non-finite point, are
// left out. Every other item lands in exactly one returned annotation, and the
// annotations are returned in creation order.
func Cluster[T LocationItem](items []T, proj Projector, cellSize float64) []*Annotation[T] {
	if !(cellSize > MinCellSize) || proj == nil {
		return nil
	}
	grid := make(map[cellKey][]*clusterState[T])
	var order []*clusterState[T]
	limit := cellSize * cellSize

	for _, it := range items {
		c := it.Coordinate()
		if !c.IsValid() {
			continue
		}
		p := proj.Project(c)
		if !p.finite() {
			continue
		}
		base := keyFor(p, cellSize)
		if hit := nearby(grid, base, p, limit); hit != nil {
			hit.merge(it, p)
			continue
		}
		st := &clusterState[T]{ann: newAnnotation(it), center: p}
		grid[base] = append(grid[base], st)
		order = append(order, st)
	}

	out := make([]*Annotation[T], len(order))
	for i, st := range order {
		out[i] = st.ann
	}
	return out
}

// nearby returns the first cluster in the 3x3 block around base whose centre
// is strictly closer than sqrt(limit) to p.
func nearby[T LocationItem](grid map[cellKey][]*clusterState[T], base cellKey, p Point, limit float64) *clusterState[T] {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, st := range grid[cellKey{X: base.X + dx, Y: base.Y + dy}] {
				if st.center.dist2(p) < limit {
					return st
				}
			}
		}
	}
	return nil
}
