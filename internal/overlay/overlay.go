package overlay

import (
	"log/slog"
	"reflect"
)

// Overlay ties the engine to a host's notifications. It keeps only the
// latest clustering pass; a new pass replaces the previous one entirely.
//
// An Overlay is not safe for concurrent use; call it from the goroutine
// that owns the viewport.
type Overlay[T LocationItem] struct {
	cellSize float64
	popover  PopoverConfig
	log      *slog.Logger

	items []T
	sig   uint64

	annotations []*Annotation[T]
	passKey     uint64
	passValid   bool

	region      Region
	regionValid bool

	selected *Annotation[T]
}

// New returns an Overlay clustering with the given cell size (normally the
// marker width in viewport units). A nil logger means slog.Default().
func New[T LocationItem](cellSize float64, popover PopoverConfig, log *slog.Logger) *Overlay[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Overlay[T]{
		cellSize: cellSize,
		popover:  popover,
		log:      log,
		sig:      Signature[T](nil),
	}
}

// SetItems handles a dataset change. It reports whether the data differs from
// the current set; when it does not, the fitted region is kept. The cached
// pass is kept only when items holds the same objects, since annotations hand
// out their members and a reload may carry new attributes under an equal
// signature.
func (o *Overlay[T]) SetItems(items []T) bool {
	sig := Signature(items)
	if sig == o.sig {
		if !sameObjects(o.items, items) {
			o.passValid = false
			o.annotations = nil
			o.selected = nil
			o.log.Debug("dataset reloaded", "items", len(items))
		}
		o.items = items
		return false
	}
	o.items = items
	o.sig = sig
	o.passValid = false
	o.regionValid = false
	o.annotations = nil
	o.selected = nil
	o.log.Debug("dataset changed", "items", len(items), "signature", sig)
	return true
}

func (o *Overlay[T]) Items() []T { return o.items }

// Signature returns the signature of the current dataset.
func (o *Overlay[T]) Signature() uint64 { return o.sig }

// SetCellSize changes the clustering threshold; the next Annotations call reclusters.
func (o *Overlay[T]) SetCellSize(size float64) {
	if size != o.cellSize {
		o.cellSize = size
		o.passValid = false
	}
}

// Annotations returns the clustering for proj. The previous pass is reused
// when neither the dataset nor the projection scale changed. A projector that
// wraps longitude should keep its seam fixed between calls, since a pan alone
// does not recluster.
func (o *Overlay[T]) Annotations(proj Projector) []*Annotation[T] {
	if proj == nil {
		return o.annotations
	}
	key := scaleKey(proj)
	if o.passValid && key == o.passKey {
		return o.annotations
	}
	o.annotations = Cluster(o.items, proj, o.cellSize)
	o.passKey = key
	o.passValid = true
	if o.selected != nil {
		o.selected = nil
		o.log.Debug("selection dropped by recluster")
	}
	o.log.Debug("reclustered", "items", len(o.items), "annotations", len(o.annotations), "cell", o.cellSize)
	return o.annotations
}

// FitRegion returns the bounding region of the current items, or
// InvalidRegion when none has a valid coordinate.
func (o *Overlay[T]) FitRegion() Region {
	if o.regionValid {
		return o.region
	}
	pts := make([]Coordinate, 0, len(o.items))
	for _, it := range o.items {
		pts = append(pts, it.Coordinate())
	}
	o.region = BoundingRegion(pts)
	o.regionValid = true
	o.log.Debug("region fitted", "valid", o.region.IsValid(),
		"lat", o.region.Center.Lat, "lon", o.region.Center.Lon,
		"dlat", o.region.Span.LatDelta, "dlon", o.region.Span.LonDelta)
	return o.region
}

// Select marks a as the annotation whose popover is shown. a must come from
// the latest pass.
func (o *Overlay[T]) Select(a *Annotation[T]) {
	for _, cur := range o.annotations {
		if cur == a {
			o.selected = a
			return
		}
	}
	o.selected = nil
}

func (o *Overlay[T]) Selected() *Annotation[T] { return o.selected }

func (o *Overlay[T]) Deselect() { o.selected = nil }

// PlacePopover lays out the popover for the selected annotation given its
// current marker frame. It is meant to run on every viewport change. When
// there is no selection or the marker frame is no longer usable, the
// selection is dropped and ok is false.
func (o *Overlay[T]) PlacePopover(marker Rect, viewport Size, insets Insets, content PopoverContent) (Rect, bool) {
	if o.selected == nil {
		return Rect{}, false
	}
	frame, ok := LayoutPopover(marker, viewport, insets, content, o.popover)
	if !ok {
		o.log.Debug("popover dismissed", "marker", marker)
		o.selected = nil
	}
	return frame, ok
}

// PopoverConfig returns the layout constants in use.
func (o *Overlay[T]) PopoverConfig() PopoverConfig { return o.popover }

// sameObjects reports whether a and b hold identical items. Items that cannot
// be compared count as different.
func sameObjects[T LocationItem](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := any(a[i]), any(b[i])
		if !reflect.ValueOf(x).Comparable() || x != y {
			return false
		}
	}
	return true
}
