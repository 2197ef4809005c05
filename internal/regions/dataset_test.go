package regions

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/vovakirdan/geoquiz/internal/geo"
	"github.com/vovakirdan/geoquiz/internal/quiz"
)

var _ quiz.Geometry = (*Dataset)(nil)

// getTestdataPath returns path to testdata/regions.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "regions")
}

func TestLoadFileIDsAndNames(t *testing.T) {
	ds, err := LoadFile(filepath.Join(getTestdataPath(), "fjords.geojson"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if ds.Name != "fjords" {
		t.Errorf("name = %q, want fjords", ds.Name)
	}
	want := []string{"0301", "1201", "1103"}
	if got := ds.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	tests := []struct {
		id   string
		name string
	}{
		{"0301", "Oslo"},
		{"1201", "Bergen"},
		{"1103", "1103"},
		{"9999", ""},
	}
	for _, tt := range tests {
		if got := ds.RegionName(tt.id); got != tt.name {
			t.Errorf("RegionName(%q) = %q, want %q", tt.id, got, tt.name)
		}
	}
}

func TestDatasetGeometry(t *testing.T) {
	ds, err := LoadFile(filepath.Join(getTestdataPath(), "fjords.geojson"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	b, ok := ds.Bound("0301")
	if !ok {
		t.Fatal("Bound(0301) not found")
	}
	if b.Min[0] != 10.5 || b.Max[1] != 60.1 {
		t.Errorf("Bound(0301) = %v", b)
	}

	c, ok := ds.Centroid("0301")
	if !ok {
		t.Fatal("Centroid(0301) not found")
	}
	if !b.Contains(c) {
		t.Errorf("centroid %v outside bound %v", c, b)
	}

	if _, ok := ds.Bound("nope"); ok {
		t.Error("Bound(nope) should not be found")
	}
	if _, err := ds.Region("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Region(nope) err = %v, want ErrNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	ds, err := LoadFile(filepath.Join(getTestdataPath(), "fjords.geojson"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if id, ok := ds.Lookup("  bergen "); !ok || id != "1201" {
		t.Errorf("Lookup(bergen) = %q, %v", id, ok)
	}
	if id, ok := ds.Lookup("0301"); !ok || id != "0301" {
		t.Errorf("Lookup(0301) = %q, %v", id, ok)
	}
	if _, ok := ds.Lookup("Trondheim"); ok {
		t.Error("Lookup(Trondheim) should fail")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"empty", `{"type": "FeatureCollection", "features": []}`},
		{"missing id", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"name": "X"}, "geometry": {"type": "Point", "coordinates": [1, 2]}}]}`},
		{"duplicate id", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"id": "a"}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
			{"type": "Feature", "properties": {"id": "a"}, "geometry": {"type": "Point", "coordinates": [3, 4]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.name, []byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuiltinContinents(t *testing.T) {
	ds, err := NewLoader("").Load(DefaultDataset)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", DefaultDataset, err)
	}

	if ds.Len() != 7 {
		t.Errorf("Len() = %d, want 7", ds.Len())
	}
	if got := ds.RegionName("SA"); got != "South America" {
		t.Errorf("RegionName(SA) = %q", got)
	}

	an, _ := ds.Bound("AN")
	if !geo.CrossesAntimeridian(an) {
		t.Errorf("Antarctica bound %v should span the antimeridian", an)
	}
	eu, _ := ds.Bound("EU")
	if geo.CrossesAntimeridian(eu) {
		t.Errorf("Europe bound %v should not span the antimeridian", eu)
	}
}

func TestLoaderNames(t *testing.T) {
	names, err := NewLoader(getTestdataPath()).Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	want := []string{"continents", "fjords"}
	if !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}

	names, err = NewLoader(filepath.Join(t.TempDir(), "missing")).Names()
	if err != nil {
		t.Fatalf("Names on missing dir failed: %v", err)
	}
	if !slices.Equal(names, []string{"continents"}) {
		t.Errorf("Names() = %v, want only built-ins", names)
	}
}

func TestLoaderDirectoryShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	data := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"id": "X", "name": "Only"}, "geometry": {"type": "Point", "coordinates": [1, 2]}}]}`
	if err := os.WriteFile(filepath.Join(dir, "continents.geojson"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := NewLoader(dir).Load("continents")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !slices.Equal(ds.IDs(), []string{"X"}) {
		t.Errorf("IDs() = %v, want the directory copy", ds.IDs())
	}
}

func TestLoaderUnknownDataset(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load("atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
