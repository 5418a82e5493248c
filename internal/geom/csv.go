package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"mapoverlay/internal/overlay"
)

// ReadCSV reads a CSV with latitude/longitude columns and returns one item per row.
// Column detection (case-insensitive): lat|latitude|y, lon|lng|long|longitude|x,
// name|title|label, id|key. Rows whose coordinates do not parse are skipped.
func ReadCSV(source string, in io.Reader) ([]*overlay.Item, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxName, idxID := -1, -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "title", "label":
			if idxName == -1 {
				idxName = i
			}
		case "id", "key":
			if idxID == -1 {
				idxID = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []*overlay.Item
	for n, row := range recs[1:] {
		lat, err1 := strconv.ParseFloat(cell(row, idxLat), 64)
		lon, err2 := strconv.ParseFloat(cell(row, idxLon), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		props := make(map[string]string, len(header))
		for i, h := range header {
			props[h] = cell(row, i)
		}
		c := overlay.Coordinate{Lat: lat, Lon: lon}
		items = append(items, newItem(source, n, c, cell(row, idxID), cell(row, idxName), props))
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}
