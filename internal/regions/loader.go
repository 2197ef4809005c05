package regions

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDataset is played when nothing else is configured.
const DefaultDataset = "continents"

const extension = ".geojson"

//go:embed data/*.geojson
var builtin embed.FS

// Loader finds datasets in an optional directory, falling back to the
// datasets compiled into the binary. A file in the directory shadows a
// built-in dataset of the same name.
type Loader struct {
	Root string
}

// NewLoader creates a loader for root. An empty root only serves built-in
// datasets.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Names returns every dataset name, sorted.
func (l *Loader) Names() ([]string, error) {
	seen := make(map[string]struct{})

	entries, err := fs.ReadDir(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("regions: list built-in datasets: %w", err)
	}
	for _, e := range entries {
		if name, ok := datasetName(e.Name()); ok {
			seen[name] = struct{}{}
		}
	}

	if l.Root != "" {
		entries, err := os.ReadDir(l.Root)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("regions: reading directory %s: %w", l.Root, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if name, ok := datasetName(e.Name()); ok {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads the named dataset.
func (l *Loader) Load(name string) (*Dataset, error) {
	if l.Root != "" {
		path := filepath.Join(l.Root, name+extension)
		ds, err := LoadFile(path)
		if err == nil {
			return ds, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	data, err := builtin.ReadFile("data/" + name + extension)
	if err != nil {
		return nil, fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	return Parse(name, data)
}

// LoadFile reads a single dataset file. The dataset is named after the
// file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions: reading file %s: %w", path, err)
	}

	name, _ := datasetName(filepath.Base(path))
	ds, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	ds.FilePath = path
	return ds, nil
}

func datasetName(file string) (string, bool) {
	if !strings.EqualFold(filepath.Ext(file), extension) {
		return "", false
	}
	return strings.TrimSuffix(file, filepath.Ext(file)), true
}
