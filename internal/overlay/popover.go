package overlay

import "math"

// PopoverContent measures the popover body.
type PopoverContent interface {
	// Width returns the width needed, at most maxWidth.
	Width(maxWidth float64) float64
	// Height returns the height needed, at most maxHeight.
	Height(maxHeight float64) float64
}

// PopoverConfig holds the layout constants, all in viewport units.
type PopoverConfig struct {
	Padding   float64
	MinWidth  float64
	RowHeight float64
	// Chrome is the fixed vertical space around the rows (borders, title).
	Chrome float64
	// AboveThreshold is the space above the marker that is always enough
	// to keep the popover above it.
	AboveThreshold float64
}

// ListContent sizes a popover listing one row per label.
type ListContent struct {
	Labels []string
	// LabelWidth measures a label; len is used when nil.
	LabelWidth func(string) float64
	Config     PopoverConfig
	// HPad is added to the longest label.
	HPad float64
}

func (c ListContent) Width(maxWidth float64) float64 {
	longest := 0.0
	for _, l := range c.Labels {
		var w float64
		if c.LabelWidth != nil {
			w = c.LabelWidth(l)
		} else {
			w = float64(len(l))
		}
		longest = math.Max(longest, w)
	}
	return math.Min(math.Max(longest+c.HPad, c.Config.MinWidth), maxWidth)
}

func (c ListContent) Height(maxHeight float64) float64 {
	rows := float64(len(c.Labels))*c.Config.RowHeight + c.Config.Chrome
	return math.Min(rows, maxHeight)
}

// LayoutPopover places a popover next to marker, inside the viewport minus
// insets and padding. It prefers the space above the marker unless that is
// both short of min(ideal height, AboveThreshold) and smaller than the space
// below.
//
// ok is false when the marker frame is not usable (non-finite or entirely
// outside the viewport); the host should dismiss the popover then.
func LayoutPopover(marker Rect, viewport Size, insets Insets, content PopoverContent, cfg PopoverConfig) (frame Rect, ok bool) {
	if !marker.finite() || content == nil {
		return Rect{}, false
	}
	if !marker.Intersects(Rect{W: viewport.W, H: viewport.H}) {
		return Rect{}, false
	}
	pad := cfg.Padding
	left := insets.Left + pad
	right := viewport.W - insets.Right - pad
	top := insets.Top + pad
	bottom := viewport.H - insets.Bottom - pad
	if right <= left || bottom <= top {
		return Rect{}, false
	}

	w := content.Width(viewport.W - insets.Left - insets.Right - 2*pad)
	w = math.Min(math.Max(w, cfg.MinWidth), right-left)

	above := marker.MinY() - insets.Top
	below := viewport.H - insets.Bottom - pad - marker.MaxY()
	ideal := content.Height(math.Inf(1))
	placeAbove := above >= math.Min(ideal, cfg.AboveThreshold) || above >= below

	avail := below
	if placeAbove {
		avail = above - pad
	}
	avail = math.Min(avail, viewport.H/2)
	h := math.Max(content.Height(avail), cfg.RowHeight+cfg.Chrome)
	h = math.Min(h, bottom-top)

	x := clamp(marker.MidX()-w/2, left, right-w)
	var y float64
	if placeAbove {
		y = marker.MinY() - h
	} else {
		y = marker.MaxY()
	}
	y = clamp(y, top, bottom-h)
	return Rect{X: x, Y: y, W: w, H: h}, true
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
