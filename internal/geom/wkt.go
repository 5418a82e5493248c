package geom

import (
	"errors"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"

	"mapoverlay/internal/overlay"
)

// ParseWKT reads one geometry per non-empty line. POINT and MULTIPOINT give
// one item per position; other geometries give one item at their bound centre.
func ParseWKT(source, text string) ([]*overlay.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty wkt")
	}
	var items []*overlay.Item
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return nil, err
		}
		for _, p := range positions(g) {
			c := overlay.Coordinate{Lat: p.Lat(), Lon: p.Lon()}
			items = append(items, newItem(source, len(items), c, "", "", nil))
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}
