// Package config loads the run manifest: which raw extracts feed each entity
// pipeline and which warehouse backend receives the cleansed output.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/sources"
	"github.com/lodeworks/refinery/pkg/warehouse"
)

// Supported warehouse drivers.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Manifest is the on-disk run configuration.
type Manifest struct {
	Extracts Extracts `yaml:"extracts"`
	Target   Target   `yaml:"warehouse"`
}

// Extracts names the raw CSV extract per entity. An empty path skips the
// entity's pipeline.
type Extracts struct {
	Customers    string `yaml:"customers"`
	Products     string `yaml:"products"`
	Sales        string `yaml:"sales"`
	Demographics string `yaml:"demographics"`
	Locations    string `yaml:"locations"`
	Categories   string `yaml:"categories"`
}

// Target selects the warehouse backend and where it lives: a directory for
// the csv driver, a database file for sqlite. The memory driver ignores Path.
type Target struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for configuration errors.
func (m *Manifest) Validate() error {
	switch m.Target.Driver {
	case DriverCSV, DriverSQLite:
		if m.Target.Path == "" {
			return errors.NewConfigError("warehouse", "driver "+m.Target.Driver+" requires a path", nil)
		}
	case DriverMemory:
	case "":
		return errors.NewConfigError("warehouse", "no driver configured", nil)
	default:
		return errors.NewConfigError("warehouse", "unknown driver "+m.Target.Driver, nil)
	}

	if (Extracts{}) == m.Extracts {
		return errors.NewConfigError("extracts", "no extracts configured", nil)
	}
	return nil
}

// Sources builds the raw feed set declared by the manifest.
func (m *Manifest) Sources() sources.Set {
	var set sources.Set
	if m.Extracts.Customers != "" {
		set.Customers = sources.CustomerCSV(m.Extracts.Customers)
	}
	if m.Extracts.Products != "" {
		set.Products = sources.ProductCSV(m.Extracts.Products)
	}
	if m.Extracts.Sales != "" {
		set.Sales = sources.SalesCSV(m.Extracts.Sales)
	}
	if m.Extracts.Demographics != "" {
		set.Demographics = sources.DemographicCSV(m.Extracts.Demographics)
	}
	if m.Extracts.Locations != "" {
		set.Locations = sources.LocationCSV(m.Extracts.Locations)
	}
	if m.Extracts.Categories != "" {
		set.Categories = sources.CategoryCSV(m.Extracts.Categories)
	}
	return set
}

// Open builds the warehouse backend declared by the manifest. The returned
// closer releases backend resources; it is a no-op for csv and memory.
func (m *Manifest) Open() (warehouse.Warehouse, func() error, error) {
	noop := func() error { return nil }

	switch m.Target.Driver {
	case DriverCSV:
		return warehouse.NewCSVDir(m.Target.Path), noop, nil
	case DriverSQLite:
		db, err := warehouse.NewSQLite(m.Target.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case DriverMemory:
		return warehouse.NewMemory(), noop, nil
	default:
		return nil, nil, errors.NewConfigError("warehouse", "unknown driver "+m.Target.Driver, nil)
	}
}
