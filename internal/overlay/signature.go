package overlay

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Signature is a cheap structural hash of a dataset: item count plus each
// item's key, coordinate and name, in order. Hosts compare signatures to skip
// reclustering and re-framing when a notification carries the same data.
func Signature[T LocationItem](items []T) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(items)))
	_, _ = d.Write(buf[:])
	for _, it := range items {
		c := it.Coordinate()
		_, _ = d.WriteString(it.Key())
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Lat))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Lon))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(it.DisplayName())
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// scaleKey identifies the projection scale: reclustering is needed when the
// visible span or viewport size changes, not on a pure pan.
func scaleKey(p Projector) uint64 {
	d := xxhash.New()
	var buf [8]byte
	r := p.VisibleRegion()
	sz := p.ViewportSize()
	for _, v := range [...]float64{r.Span.LatDelta, r.Span.LonDelta, sz.W, sz.H} {
		// rounded so float noise from pan arithmetic does not count as a zoom
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(math.Round(v*1e6)/1e6))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
