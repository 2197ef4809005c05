// Package regions loads the region datasets a quiz is played on. A dataset
// is a GeoJSON feature collection; each feature is one answerable region.
package regions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/vovakirdan/geoquiz/internal/geo"
)

// ErrNotFound is returned for an unknown dataset or region id.
var ErrNotFound = errors.New("regions: not found")

// Region is a single answerable area.
type Region struct {
	ID       string
	Name     string
	Geometry orb.Geometry
	Bound    orb.Bound
	Centroid orb.Point
}

// Dataset is an ordered set of regions. It implements quiz.Geometry.
type Dataset struct {
	Name     string
	FilePath string

	regions []Region
	index   map[string]int
}

// Parse decodes a GeoJSON feature collection. A region's id is the "id"
// property, or the feature id when that is missing; its name is the
// "name" property, or the id. Features without geometry are skipped.
func Parse(name string, data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("regions: parse %s: %w", name, err)
	}

	ds := &Dataset{
		Name:  name,
		index: make(map[string]int, len(fc.Features)),
	}

	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}

		id := featureID(f)
		if id == "" {
			return nil, fmt.Errorf("regions: parse %s: feature %d has no id", name, i)
		}
		if _, dup := ds.index[id]; dup {
			return nil, fmt.Errorf("regions: parse %s: duplicate id %q", name, id)
		}

		regionName, _ := f.Properties["name"].(string)
		regionName = strings.TrimSpace(regionName)
		if regionName == "" {
			regionName = id
		}

		ds.index[id] = len(ds.regions)
		ds.regions = append(ds.regions, Region{
			ID:       id,
			Name:     regionName,
			Geometry: f.Geometry,
			Bound:    f.Geometry.Bound(),
			Centroid: geo.Centroid(f.Geometry),
		})
	}

	if len(ds.regions) == 0 {
		return nil, fmt.Errorf("regions: parse %s: no regions", name)
	}
	return ds, nil
}

func featureID(f *geojson.Feature) string {
	if v, ok := f.Properties["id"]; ok {
		if id := idString(v); id != "" {
			return id
		}
	}
	return idString(f.ID)
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	default:
		return ""
	}
}

// Len returns the number of regions.
func (d *Dataset) Len() int {
	return len(d.regions)
}

// IDs returns every region id in file order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.regions))
	for i, r := range d.regions {
		ids[i] = r.ID
	}
	return ids
}

// Regions returns a copy of the region list.
func (d *Dataset) Regions() []Region {
	out := make([]Region, len(d.regions))
	copy(out, d.regions)
	return out
}

// Region looks a region up by id.
func (d *Dataset) Region(id string) (Region, error) {
	i, ok := d.index[id]
	if !ok {
		return Region{}, fmt.Errorf("%w: region %q in %s", ErrNotFound, id, d.Name)
	}
	return d.regions[i], nil
}

// RegionName returns the display name of a region, or "" when it is
// unknown.
func (d *Dataset) RegionName(id string) string {
	if i, ok := d.index[id]; ok {
		return d.regions[i].Name
	}
	return ""
}

// Bound returns the bounding box of a region.
func (d *Dataset) Bound(id string) (orb.Bound, bool) {
	i, ok := d.index[id]
	if !ok {
		return orb.Bound{}, false
	}
	return d.regions[i].Bound, true
}

// Centroid returns the area centroid of a region.
func (d *Dataset) Centroid(id string) (orb.Point, bool) {
	i, ok := d.index[id]
	if !ok {
		return orb.Point{}, false
	}
	return d.regions[i].Centroid, true
}

// Lookup returns the id of the region whose name matches name, ignoring
// case and surrounding space.
func (d *Dataset) Lookup(name string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, r := range d.regions {
		if strings.ToLower(r.Name) == want || r.ID == name {
			return r.ID, true
		}
	}
	return "", false
}
