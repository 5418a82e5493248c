package geom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"mapoverlay/internal/overlay"
)

var (
	// ErrNoItems is returned when a source parses but yields no usable location.
	ErrNoItems = errors.New("no items found")
	// ErrUnsupported is returned for file types the loaders do not read.
	ErrUnsupported = errors.New("unsupported file type")
)

var formats = map[string]string{
	".geojson": "geojson",
	".json":    "geojson",
	".csv":     "csv",
	".kml":     "kml",
	".wkt":     "wkt",
}

// Supported reports whether Load can read name, optionally zstd compressed.
func Supported(name string) bool {
	_, ok := formats[innerExt(name)]
	return ok
}

func innerExt(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".zst")
	return filepath.Ext(name)
}

// Load reads a dataset file into items. ".zst" files are decompressed and
// read according to the extension underneath.
func Load(path string) ([]*overlay.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse reads data in the format implied by name's extension.
func Parse(name string, data []byte) ([]*overlay.Item, error) {
	ext := innerExt(name)
	var (
		items []*overlay.Item
		err   error
	)
	switch formats[ext] {
	case "geojson":
		items, err = ReadGeoJSON(name, data)
	case "csv":
		items, err = ReadCSV(name, bytes.NewReader(data))
	case "kml":
		items, err = ReadKML(name, data)
	case "wkt":
		items, err = ParseWKT(name, string(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return items, nil
}

// stableID derives an item key for sources without one. The same source,
// position and coordinate always give the same key.
func stableID(source string, index int, c overlay.Coordinate) string {
	seed := source + "#" + strconv.Itoa(index) + "@" +
		strconv.FormatFloat(c.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'g', -1, 64)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// newItem fills in the defaults shared by all loaders.
func newItem(source string, index int, c overlay.Coordinate, id, name string, props map[string]string) *overlay.Item {
	if id == "" {
		id = stableID(source, index, c)
	}
	if name == "" {
		name = fmt.Sprintf("#%d", index+1)
	}
	it := &overlay.Item{ID: id, Position: c, Name: name, Props: props}
	for _, k := range []string{"marker-color", "color"} {
		if v := props[k]; v != "" {
			it.Style.Color = v
			break
		}
	}
	return it
}
