package geom

import (
	"encoding/xml"
	"strconv"
	"strings"

	"mapoverlay/internal/overlay"
)

type kmlPlacemark struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name"`
	Desc  string `xml:"description"`
	Point *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlDoc        `xml:"Document"`
	Folders    []kmlDoc       `xml:"Folder"`
}

func (d *kmlDoc) walk(fn func(kmlPlacemark)) {
	for _, pm := range d.Placemarks {
		fn(pm)
	}
	if d.Document != nil {
		d.Document.walk(fn)
	}
	for i := range d.Folders {
		d.Folders[i].walk(fn)
	}
}

// ReadKML extracts Placemark > Point entries, including those nested in
// Document and Folder elements. KML coordinates are "lon,lat[,alt]"; altitude
// is ignored.
func ReadKML(source string, data []byte) ([]*overlay.Item, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var items []*overlay.Item
	doc.walk(func(pm kmlPlacemark) {
		if pm.Point == nil {
			return
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			var props map[string]string
			if pm.Desc != "" {
				props = map[string]string{"description": strings.TrimSpace(pm.Desc)}
			}
			c := overlay.Coordinate{Lat: lat, Lon: lon}
			items = append(items, newItem(source, len(items), c, pm.ID, strings.TrimSpace(pm.Name), props))
		}
	})
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}
