package overlay

import (
	"math"
	"strconv"
)

// Style is carried through the engine untouched; the host decides what it means.
type Style struct {
	Color string
	Font  string
}

// LocationItem is the capability set the engine needs from a host item.
type LocationItem interface {
	Key() string
	Coordinate() Coordinate
	DisplayName() string
	DisplayStyle() Style
	// Select runs the item's selection callback.
	Select()
}

// Item is a ready-made LocationItem.
type Item struct {
	ID       string
	Position Coordinate
	Name     string
	Style    Style
	OnSelect func(*Item)

	// Props holds source attributes (CSV columns, GeoJSON properties).
	Props map[string]string
}

func (it *Item) Key() string            { return it.ID }
func (it *Item) Coordinate() Coordinate { return it.Position }
func (it *Item) DisplayName() string    { return it.Name }
func (it *Item) DisplayStyle() Style    { return it.Style }

func (it *Item) Select() {
	if it.OnSelect != nil {
		it.OnSelect(it)
	}
}

// Annotation groups one or more items behind a single marker.
// Its coordinate is the running mean of its members.
type Annotation[T LocationItem] struct {
	members []T
	latSum  float64
	// lonSum is not wrapped: members are added at the longitude closest to
	// the current mean, so groups across the antimeridian average near ±180.
	lonSum float64
}

func newAnnotation[T LocationItem](first T) *Annotation[T] {
	a := &Annotation[T]{}
	a.add(first)
	return a
}

func (a *Annotation[T]) add(item T) {
	c := item.Coordinate()
	lon := c.Lon
	if n := len(a.members); n > 0 {
		mean := a.lonSum / float64(n)
		lon += 360 * math.Round((mean-lon)/360)
	}
	a.members = append(a.members, item)
	a.latSum += c.Lat
	a.lonSum += lon
}

// Coordinate is the arithmetic mean of the member coordinates, taking each
// longitude on the side of the antimeridian nearest the others.
func (a *Annotation[T]) Coordinate() Coordinate {
	n := float64(len(a.members))
	lon := a.lonSum / n
	if lon < -180 || lon > 180 {
		lon = WrapLongitude(lon)
	}
	return Coordinate{Lat: a.latSum / n, Lon: lon}
}

// Members returns the items in insertion order. The slice must not be modified.
func (a *Annotation[T]) Members() []T { return a.members }

func (a *Annotation[T]) Count() int { return len(a.members) }

// IsAggregate reports whether the marker stands for more than one item.
func (a *Annotation[T]) IsAggregate() bool { return len(a.members) > 1 }

// Title is the single member's name, or "<n> items" for aggregates.
func (a *Annotation[T]) Title() string {
	if len(a.members) == 1 {
		return a.members[0].DisplayName()
	}
	return strconv.Itoa(len(a.members)) + " items"
}
