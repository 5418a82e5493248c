package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mapoverlay/internal/overlay"
)

// ReadGeoJSON extracts items from a FeatureCollection, a single Feature or a
// bare geometry. Point and MultiPoint members become one item per position;
// any other geometry becomes one item at the centre of its bound.
// Feature properties "name"/"title" and "id" fill the item name and key.
func ReadGeoJSON(source string, data []byte) ([]*overlay.Item, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Type == "" {
		return nil, errors.New("invalid geojson: missing type")
	}

	var features []*geojson.Feature
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{f}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	var items []*overlay.Item
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		name := f.Properties.MustString("name", f.Properties.MustString("title", ""))
		id := featureID(f)
		props := make(map[string]string, len(f.Properties))
		for k, v := range f.Properties {
			props[k] = fmt.Sprint(v)
		}
		pts := positions(f.Geometry)
		for i, p := range pts {
			itemID := id
			if itemID != "" && len(pts) > 1 {
				itemID = fmt.Sprintf("%s/%d", id, i)
			}
			c := overlay.Coordinate{Lat: p.Lat(), Lon: p.Lon()}
			items = append(items, newItem(source, len(items), c, itemID, name, props))
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func featureID(f *geojson.Feature) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return f.Properties.MustString("id", "")
}

// positions maps a geometry to the points it is shown at.
func positions(g orb.Geometry) []orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return []orb.Point{v}
	case orb.MultiPoint:
		return v
	case orb.Collection:
		var out []orb.Point
		for _, m := range v {
			out = append(out, positions(m)...)
		}
		return out
	default:
		if g.Dimensions() < 0 {
			return nil
		}
		return []orb.Point{g.Bound().Center()}
	}
}
