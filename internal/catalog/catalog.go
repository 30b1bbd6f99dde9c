// Package catalog loads and serves vendor I/O module specifications. A
// built-in Yokogawa catalog is always available; YAML catalog files can add
// or replace vendors after schema validation.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/icsuite/wireplan/internal/types"
)

// fallbackDensity is the channels-per-card assumption when a vendor gives no
// density for a system and I/O type.
const fallbackDensity = 8

// systemSpec is one control system's section of a vendor catalog file.
type systemSpec struct {
	Modules        []types.IOModule     `yaml:"modules"`
	ChannelDensity map[types.IOType]int `yaml:"channel_density"`
}

// catalogFile is the on-disk shape of a vendor catalog.
type catalogFile struct {
	Vendor      string                             `yaml:"vendor"`
	Description string                             `yaml:"description"`
	Systems     map[types.ControlSystem]systemSpec `yaml:"systems"`
}

// vendorSpec is a loaded, normalized vendor catalog.
type vendorSpec struct {
	vendor  string
	systems map[types.ControlSystem]systemSpec
}

// Catalog holds the vendor specs for module lookup. Safe for concurrent
// reads after loading.
type Catalog struct {
	mu        sync.RWMutex
	validator *Validator
	vendors   map[string]*vendorSpec
}

// New builds a catalog preloaded with the built-in vendor defaults.
func New() (*Catalog, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	c := &Catalog{
		validator: validator,
		vendors:   make(map[string]*vendorSpec),
	}
	c.registerDefaults()
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the shared catalog instance holding the built-in vendors.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = New()
	})
	return defaultCatalog, defaultErr
}

// LoadFile validates and registers one vendor catalog file. A vendor already
// present is replaced.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	if err := c.validator.ValidateCatalog(data); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	spec := &vendorSpec{
		vendor:  file.Vendor,
		systems: make(map[types.ControlSystem]systemSpec, len(file.Systems)),
	}
	for system, section := range file.Systems {
		for i := range section.Modules {
			section.Modules[i].ControlSystem = system
			section.Modules[i].Vendor = file.Vendor
		}
		spec.systems[system] = section
	}

	c.mu.Lock()
	c.vendors[file.Vendor] = spec
	c.mu.Unlock()

	return nil
}

// LoadDir registers every .yaml catalog in a directory. A missing directory
// is not an error so deployments can run on built-ins alone.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read catalog dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := c.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Module returns the primary module for a vendor, system and I/O type.
// When silRequired is set only safety-rated modules qualify.
func (c *Catalog) Module(vendor string, system types.ControlSystem, ioType types.IOType, silRequired bool) (*types.IOModule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.vendors[vendor]
	if !ok {
		return nil, false
	}
	section, ok := spec.systems[system]
	if !ok {
		return nil, false
	}

	for i := range section.Modules {
		m := &section.Modules[i]
		if m.IOType != ioType {
			continue
		}
		if silRequired && !m.IsSafetyRated() {
			continue
		}
		return m, true
	}
	return nil, false
}

// Modules returns every module for a vendor, system and I/O type.
func (c *Catalog) Modules(vendor string, system types.ControlSystem, ioType types.IOType) []types.IOModule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.vendors[vendor]
	if !ok {
		return nil
	}
	section, ok := spec.systems[system]
	if !ok {
		return nil
	}

	var matches []types.IOModule
	for _, m := range section.Modules {
		if m.IOType == ioType {
			matches = append(matches, m)
		}
	}
	return matches
}

// AllModules returns every module a vendor offers, grouped by system.
func (c *Catalog) AllModules(vendor string) map[types.ControlSystem][]types.IOModule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.vendors[vendor]
	if !ok {
		return nil
	}

	grouped := make(map[types.ControlSystem][]types.IOModule, len(spec.systems))
	for system, section := range spec.systems {
		grouped[system] = append([]types.IOModule(nil), section.Modules...)
	}
	return grouped
}

// ChannelDensity returns the channels-per-card figure for a vendor, system
// and I/O type, falling back to the default density when unknown.
func (c *Catalog) ChannelDensity(vendor string, system types.ControlSystem, ioType types.IOType) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.vendors[vendor]
	if !ok {
		return fallbackDensity
	}
	section, ok := spec.systems[system]
	if !ok {
		return fallbackDensity
	}
	if density, ok := section.ChannelDensity[ioType]; ok {
		return density
	}
	return fallbackDensity
}

// VendorSupported reports whether a vendor catalog is loaded.
func (c *Catalog) VendorSupported(vendor string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.vendors[vendor]
	return ok
}

// Vendors lists the loaded vendor names, sorted.
func (c *Catalog) Vendors() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.vendors))
	for name := range c.vendors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
