package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	name     string
	frame    Rect
	hidden   bool
	disabled bool
	accept   func(Point) bool
}

func (v *fakeView) Frame() Rect   { return v.frame }
func (v *fakeView) Visible() bool { return !v.hidden }
func (v *fakeView) Enabled() bool { return !v.disabled }

func (v *fakeView) ContainsLocal(p Point) bool {
	if v.accept != nil {
		return v.accept(p)
	}
	return p.X >= 0 && p.X < v.frame.W && p.Y >= 0 && p.Y < v.frame.H
}

// pin returns a 10x20 view whose tip is at (x, y).
func pin(name string, x, y float64) *fakeView {
	return &fakeView{name: name, frame: Rect{X: x - 5, Y: y - 20, W: 10, H: 20}}
}

func TestResolveHit_NearestTip(t *testing.T) {
	a := pin("a", 10, 50)
	b := pin("b", 12, 50)
	for i := 0; i < 20; i++ {
		got, ok := ResolveHit(Point{X: 11.4, Y: 45}, HostHit[*fakeView]{}, []*fakeView{a, b})
		require.True(t, ok)
		assert.Equal(t, "b", got.name)

		got, ok = ResolveHit(Point{X: 10.6, Y: 45}, HostHit[*fakeView]{}, []*fakeView{b, a})
		require.True(t, ok)
		assert.Equal(t, "a", got.name)
	}
}

func TestResolveHit_TieKeepsFirst(t *testing.T) {
	a := pin("a", 10, 50)
	b := pin("b", 12, 50)
	tap := Point{X: 11, Y: 45}
	for i := 0; i < 20; i++ {
		got, _ := ResolveHit(tap, HostHit[*fakeView]{}, []*fakeView{a, b})
		assert.Equal(t, "a", got.name)
		got, _ = ResolveHit(tap, HostHit[*fakeView]{}, []*fakeView{b, a})
		assert.Equal(t, "b", got.name)
	}
}

func TestResolveHit_UsesTipNotCentre(t *testing.T) {
	// tall sits higher; its centre is nearer the tap but its tip is not.
	tall := &fakeView{name: "tall", frame: Rect{X: 0, Y: 0, W: 10, H: 40}}
	short := &fakeView{name: "short", frame: Rect{X: 0, Y: 20, W: 10, H: 14}}
	got, ok := ResolveHit(Point{X: 5, Y: 22}, HostHit[*fakeView]{}, []*fakeView{tall, short})
	require.True(t, ok)
	assert.Equal(t, "short", got.name)
}

func TestResolveHit_FiltersAndFallbacks(t *testing.T) {
	hostView := &fakeView{name: "host"}
	host := HostHit[*fakeView]{View: hostView, Found: true}
	tap := Point{X: 10, Y: 45}

	hidden := pin("hidden", 10, 50)
	hidden.hidden = true
	disabled := pin("disabled", 10, 50)
	disabled.disabled = true
	far := pin("far", 100, 100)

	got, ok := ResolveHit(tap, host, []*fakeView{hidden, disabled, far})
	assert.True(t, ok)
	assert.Same(t, hostView, got)

	got, ok = ResolveHit(tap, HostHit[*fakeView]{}, []*fakeView{far})
	assert.False(t, ok)
	assert.Nil(t, got)

	// interactive host hits win even over a matching marker
	near := pin("near", 10, 50)
	got, ok = ResolveHit(tap, HostHit[*fakeView]{View: hostView, Found: true, Interactive: true}, []*fakeView{near})
	assert.True(t, ok)
	assert.Same(t, hostView, got)

	got, _ = ResolveHit(tap, host, []*fakeView{near})
	assert.Same(t, near, got)
}

func TestResolveHit_CustomPredicateInLocalCoordinates(t *testing.T) {
	var seen Point
	v := &fakeView{name: "padded", frame: Rect{X: 100, Y: 200, W: 10, H: 10}, accept: func(p Point) bool {
		seen = p
		return p.X >= -4 && p.X < 14 && p.Y >= -4 && p.Y < 14
	}}
	got, ok := ResolveHit(Point{X: 97, Y: 212}, HostHit[*fakeView]{}, []*fakeView{v})
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, Point{X: -3, Y: 12}, seen)
}

func TestPaddedView(t *testing.T) {
	v := PaddedView{Rect: Rect{X: 10, Y: 10, W: 6, H: 8}, Slop: 1}
	assert.True(t, v.ContainsLocal(Point{X: -1, Y: 0}))
	assert.True(t, v.ContainsLocal(Point{X: 6.5, Y: 8.5}))
	assert.False(t, v.ContainsLocal(Point{X: -1.5, Y: 0}))
	assert.False(t, v.ContainsLocal(Point{X: 0, Y: 9}))
	assert.True(t, v.Visible() && v.Enabled())

	got, ok := ResolveHit(Point{X: 9.5, Y: 12}, HostHit[PaddedView]{}, []PaddedView{v})
	require.True(t, ok)
	assert.Equal(t, v, got)
}
