package tui

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"mapoverlay/internal/config"
	"mapoverlay/internal/overlay"
)

type annotation = overlay.Annotation[*overlay.Item]

// markerSize is the marker box and hit slop, in dots.
type markerSize struct {
	w, h, slop float64
}

func markerSizeFrom(c config.MarkerConfig) markerSize {
	return markerSize{
		w:    float64(c.WidthCells * config.DotsPerCellX),
		h:    float64(c.HeightCells * config.DotsPerCellY),
		slop: float64(c.HitSlop * config.DotsPerCellX),
	}
}

// markerView is the hit-test view of one annotation. Its tip, the bottom
// centre of the frame, sits on the projected coordinate.
type markerView struct {
	overlay.PaddedView
	ann   *annotation
	order int
}

// Bounds implements rtreego.Spatial over the padded frame.
func (v markerView) Bounds() rtreego.Rect {
	f := v.Frame()
	r, _ := rtreego.NewRect(
		rtreego.Point{f.X - v.Slop, f.Y - v.Slop},
		[]float64{f.W + 2*v.Slop, f.H + 2*v.Slop},
	)
	return r
}

// markerLayer holds the views of the latest pass and an R-tree over the
// visible ones.
type markerLayer struct {
	views []markerView
	tree  *rtreego.Rtree
}

func buildMarkers(anns []*annotation, proj overlay.Projector, size markerSize) markerLayer {
	screen := proj.ViewportSize()
	bounds := overlay.Rect{X: -size.slop, Y: -size.slop, W: screen.W + 2*size.slop, H: screen.H + 2*size.slop}
	l := markerLayer{views: make([]markerView, 0, len(anns)), tree: rtreego.NewTree(2, 25, 50)}
	for i, a := range anns {
		tip := proj.Project(a.Coordinate())
		frame := overlay.Rect{X: tip.X - size.w/2, Y: tip.Y - size.h, W: size.w, H: size.h}
		v := markerView{
			PaddedView: overlay.PaddedView{Rect: frame, Slop: size.slop},
			ann:        a,
			order:      i,
		}
		v.Hidden = !frame.Intersects(bounds)
		l.views = append(l.views, v)
		if !v.Hidden {
			l.tree.Insert(v)
		}
	}
	return l
}

// candidates returns the visible views whose padded frame covers tap, in
// pass order.
func (l markerLayer) candidates(tap overlay.Point) []markerView {
	if l.tree == nil {
		return nil
	}
	q, err := rtreego.NewRect(rtreego.Point{tap.X, tap.Y}, []float64{1e-6, 1e-6})
	if err != nil {
		return nil
	}
	found := l.tree.SearchIntersect(q)
	out := make([]markerView, 0, len(found))
	for _, s := range found {
		out = append(out, s.(markerView))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

// hit resolves a tap against the markers under it.
func (l markerLayer) hit(tap overlay.Point, host overlay.HostHit[markerView]) (markerView, bool) {
	return overlay.ResolveHit(tap, host, l.candidates(tap))
}

func (l markerLayer) find(a *annotation) (markerView, bool) {
	for _, v := range l.views {
		if v.ann == a {
			return v, true
		}
	}
	return markerView{}, false
}
