package overlay

// MarkerView is a rendered marker as the hit tester sees it.
type MarkerView interface {
	// Frame is the marker's bounding box in viewport coordinates.
	Frame() Rect
	Visible() bool
	Enabled() bool
	// ContainsLocal is the view's own hit predicate, in frame-local
	// coordinates. Views may accept points outside their frame.
	ContainsLocal(p Point) bool
}

// HostHit is the host's default hit-test result for a tap.
type HostHit[V MarkerView] struct {
	View  V
	Found bool
	// Interactive is set when the tap landed on a control or inside a
	// list/table subtree. Such hits are never overridden.
	Interactive bool
}

// ResolveHit picks the marker the user most likely meant: among the visible,
// enabled views whose predicate accepts tap, the one whose tip is nearest to
// tap. Equal distances keep the view that comes first in views.
//
// Interactive host hits win outright. When nothing matches, the host result
// is returned unchanged.
func ResolveHit[V MarkerView](tap Point, host HostHit[V], views []V) (V, bool) {
	if host.Interactive {
		return host.View, host.Found
	}
	var (
		best    V
		bestD   float64
		matched bool
	)
	for _, v := range views {
		if !v.Visible() || !v.Enabled() {
			continue
		}
		f := v.Frame()
		if !v.ContainsLocal(Point{X: tap.X - f.X, Y: tap.Y - f.Y}) {
			continue
		}
		d := f.Anchor().dist2(tap)
		if !matched || d < bestD {
			best, bestD, matched = v, d, true
		}
	}
	if !matched {
		return host.View, host.Found
	}
	return best, true
}

// PaddedView wraps a frame with a symmetric hit slop. It is the default
// MarkerView for hosts that only know frames.
type PaddedView struct {
	Rect     Rect
	Slop     float64
	Hidden   bool
	Disabled bool
}

func (v PaddedView) Frame() Rect   { return v.Rect }
func (v PaddedView) Visible() bool { return !v.Hidden }
func (v PaddedView) Enabled() bool { return !v.Disabled }

func (v PaddedView) ContainsLocal(p Point) bool {
	return p.X >= -v.Slop && p.X < v.Rect.W+v.Slop && p.Y >= -v.Slop && p.Y < v.Rect.H+v.Slop
}
