package overlay

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCluster_CellSizeBelowMinimum(t *testing.T) {
	items := []*Item{item("a", 0, 0), item("b", 1, 1)}
	proj := &linearProjector{scale: 10}
	for _, size := range []float64{-1, 0, 4, MinCellSize, math.NaN()} {
		assert.Empty(t, Cluster(items, proj, size), "cell size %v", size)
	}
	assert.Len(t, Cluster(items, proj, MinCellSize+0.5), 2)
}

func TestCluster_MergesWithinThreshold(t *testing.T) {
	proj := &linearProjector{scale: 1}
	tests := []struct {
		name  string
		items []*Item
		want  []int
	}{
		{"empty", nil, []int{}},
		{"single", []*Item{item("a", 5, 5)}, []int{1}},
		{"close pair", []*Item{item("a", 0, 0), item("b", 0, 9.9)}, []int{2}},
		{"exactly cell size apart", []*Item{item("a", 0, 0), item("b", 0, 10)}, []int{1, 1}},
		{"far pair", []*Item{item("a", 0, 0), item("b", 40, 40)}, []int{1, 1}},
		{"across cell boundary", []*Item{item("a", 0, 9.5), item("b", 0, 10.5)}, []int{2}},
		{"three and one", []*Item{item("a", 0, 0), item("b", 1, 1), item("c", -1, 2), item("d", 50, 50)}, []int{3, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Cluster(tc.items, proj, 10)
			counts := make([]int, len(got))
			for i, a := range got {
				counts[i] = a.Count()
			}
			assert.Equal(t, tc.want, counts)
		})
	}
}

func TestCluster_SkipsInvalidCoordinates(t *testing.T) {
	items := []*Item{
		item("ok", 1, 1),
		item("nan", math.NaN(), 1),
		item("inf", 1, math.Inf(1)),
		item("lat", 91, 0),
		item("ok2", 1.1, 1.1),
	}
	got := Cluster(items, &linearProjector{scale: 1}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, []*Item{items[0], items[4]}, got[0].Members())
	c := got[0].Coordinate()
	assert.False(t, math.IsNaN(c.Lat) || math.IsNaN(c.Lon))
}

type nanProjector struct{ linearProjector }

func (p *nanProjector) Project(c Coordinate) Point {
	if c.Lat > 0 {
		return Point{X: math.NaN(), Y: 0}
	}
	return p.linearProjector.Project(c)
}

func TestCluster_SkipsUnprojectablePoints(t *testing.T) {
	got := Cluster([]*Item{item("a", 1, 0), item("b", -1, 0)}, &nanProjector{linearProjector{scale: 1}}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Members()[0].Key())
}

func TestCluster_FirstFitIsOrderDependent(t *testing.T) {
	// b sits within reach of both a and c, which are too far apart to merge.
	a, b, c := item("a", 0, 0), item("b", 0, 8), item("c", 0, 16)
	proj := &linearProjector{scale: 1}

	abc := Cluster([]*Item{a, b, c}, proj, 10)
	require.Len(t, abc, 2)
	assert.Equal(t, []*Item{a, b}, abc[0].Members())

	cba := Cluster([]*Item{c, b, a}, proj, 10)
	require.Len(t, cba, 2)
	assert.Equal(t, []*Item{c, b}, cba[0].Members())
}

func TestCluster_ScreenCentreTracksMembers(t *testing.T) {
	// After a and b merge the centre moves to x=5.75, which brings c at x=15 within reach.
	items := []*Item{item("a", 0, 0), item("b", 0, 12-0.5), item("c", 0, 15)}
	got := Cluster(items, &linearProjector{scale: 1}, 12)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Count())
}

func TestCluster_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	proj := &linearProjector{scale: 3}
	for round := 0; round < 50; round++ {
		n := rng.IntN(300)
		items := make([]*Item, n)
		for i := range items {
			items[i] = item(fmt.Sprintf("%d-%d", round, i), rng.Float64()*60-30, rng.Float64()*120-60)
		}
		got := Cluster(items, proj, 9+rng.Float64()*40)

		// completeness: every item exactly once
		seen := make(map[*Item]int, n)
		for _, a := range got {
			require.GreaterOrEqual(t, a.Count(), 1)
			for _, m := range a.Members() {
				seen[m]++
			}
		}
		require.Len(t, seen, n)
		for it, k := range seen {
			require.Equal(t, 1, k, "item %s", it.ID)
		}

		// centroid: incremental mean equals fresh mean
		for _, a := range got {
			var lat, lon float64
			for _, m := range a.Members() {
				lat += m.Position.Lat
				lon += m.Position.Lon
			}
			k := float64(a.Count())
			c := a.Coordinate()
			assert.InDelta(t, lat/k, c.Lat, 1e-9)
			assert.InDelta(t, lon/k, c.Lon, 1e-9)
		}
	}
}

func TestCluster_PairWithinThresholdMerges(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	proj := &linearProjector{scale: 1}
	for i := 0; i < 200; i++ {
		size := 9 + rng.Float64()*50
		ang := rng.Float64() * 2 * math.Pi
		d := rng.Float64() * size * 0.999
		lat0, lon0 := rng.Float64()*40-20, rng.Float64()*200-100
		a := item("a", lat0, lon0)
		b := item("b", lat0+d*math.Sin(ang), lon0+d*math.Cos(ang))
		got := Cluster([]*Item{a, b}, proj, size)
		require.Len(t, got, 1, "size=%v d=%v", size, d)
	}
}

// wrapProjector measures longitude from centerLon and wraps it, the way a
// map that scrolls across the antimeridian does.
type wrapProjector struct {
	linearProjector
	centerLon float64
}

func (p *wrapProjector) Project(c Coordinate) Point {
	return Point{X: WrapLongitude(c.Lon-p.centerLon) * p.scale, Y: -c.Lat * p.scale}
}

func TestCluster_AcrossAntimeridian(t *testing.T) {
	proj := &wrapProjector{linearProjector: linearProjector{scale: 10}, centerLon: 180}
	tests := []struct {
		name  string
		items []*Item
	}{
		{"east first", []*Item{item("e", 1.8, 179.99), item("w", 2.2, -179.99)}},
		{"west first", []*Item{item("w", 2.2, -179.99), item("e", 1.8, 179.99)}},
		{"three", []*Item{item("e", 1.8, 179.95), item("w", 2, -179.95), item("w2", 2.2, -179.9)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Cluster(tc.items, proj, 10)
			require.Len(t, got, 1)
			assert.Equal(t, len(tc.items), got[0].Count())
			c := got[0].Coordinate()
			assert.True(t, c.IsValid())
			assert.InDelta(t, 180, math.Abs(c.Lon), 0.05)
			assert.InDelta(t, 2, c.Lat, 1e-9)
		})
	}
}

func TestAnnotation_MeanAcrossAntimeridian(t *testing.T) {
	a := newAnnotation(item("e", 0, 170))
	a.add(item("w", 0, -170))
	assert.InDelta(t, 180, math.Abs(a.Coordinate().Lon), 1e-9)

	a.add(item("w2", 0, -160))
	// 170, 190, 200 averaged and wrapped
	assert.InDelta(t, -173.33333333, a.Coordinate().Lon, 1e-6)

	plain := newAnnotation(item("a", 0, -10))
	plain.add(item("b", 0, 30))
	assert.InDelta(t, 10, plain.Coordinate().Lon, 1e-9)
}
