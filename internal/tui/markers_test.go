package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapoverlay/internal/overlay"
)

func markerFixture(t *testing.T) markerLayer {
	t.Helper()
	v := viewport{degPerDot: 1, w: 100, h: 50}
	items := []*overlay.Item{
		{ID: "a", Name: "A", Position: overlay.Coordinate{Lat: 0, Lon: 0}},
		{ID: "b", Name: "B", Position: overlay.Coordinate{Lat: 0, Lon: 12}},
		{ID: "c", Name: "C", Position: overlay.Coordinate{Lat: 0, Lon: 80}},
	}
	anns := overlay.Cluster(items, v, 10)
	require.Len(t, anns, 3)
	return buildMarkers(anns, v, markerSize{w: 10, h: 8, slop: 2})
}

func TestBuildMarkers_Frames(t *testing.T) {
	l := markerFixture(t)
	require.Len(t, l.views, 3)

	a := l.views[0]
	assert.Equal(t, overlay.Rect{X: 45, Y: 17, W: 10, H: 8}, a.Frame())
	assert.Equal(t, overlay.Point{X: 50, Y: 25}, a.Frame().Anchor(), "tip sits on the projected point")
	assert.False(t, a.Hidden)
	assert.True(t, l.views[2].Hidden, "off-screen marker")

	v, ok := l.find(l.views[1].ann)
	require.True(t, ok)
	assert.Equal(t, 1, v.order)
}

func TestMarkerLayer_Hit(t *testing.T) {
	l := markerFixture(t)

	got := l.candidates(overlay.Point{X: 56, Y: 21})
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].order)
	assert.Equal(t, 1, got[1].order)

	cases := []struct {
		name string
		tap  overlay.Point
		want int
	}{
		{"closer to first tip", overlay.Point{X: 55.5, Y: 21}, 0},
		{"closer to second tip", overlay.Point{X: 56.5, Y: 21}, 1},
		{"tie keeps pass order", overlay.Point{X: 56, Y: 21}, 0},
		{"inside slop only", overlay.Point{X: 44, Y: 16}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := l.hit(tc.tap, overlay.HostHit[markerView]{})
			require.True(t, ok)
			assert.Equal(t, tc.want, v.order)
		})
	}

	_, ok := l.hit(overlay.Point{X: 95, Y: 45}, overlay.HostHit[markerView]{})
	assert.False(t, ok, "empty space")
	assert.Empty(t, l.candidates(overlay.Point{X: 130, Y: 21}), "hidden markers are not indexed")

	_, ok = l.hit(overlay.Point{X: 50, Y: 21}, overlay.HostHit[markerView]{Interactive: true})
	assert.False(t, ok, "interactive host hit wins")
}
