package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// catalogueFile is the on-disk shape of modules.yaml.
type catalogueFile struct {
	Modules []domain.ModuleRecord `yaml:"modules"`
}

// Catalogue implements ports.Catalogue over the workspace modules.yaml.
type Catalogue struct {
	records []domain.ModuleRecord
	byName  map[string]int
}

// LoadCatalogue reads the catalogue at path. A missing file yields an empty catalogue.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from workspace settings
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCatalogue(nil)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read module catalogue"), "path", path)
	}

	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse module catalogue"), "path", path)
	}
	return NewCatalogue(file.Modules)
}

// NewCatalogue validates records and indexes them by name.
func NewCatalogue(records []domain.ModuleRecord) (*Catalogue, error) {
	c := &Catalogue{
		records: slices.Clone(records),
		byName:  make(map[string]int, len(records)),
	}
	for i, r := range c.records {
		if r.Name == "" {
			return nil, zerr.With(zerr.New("catalogue entry without a name"), "index", i)
		}
		if r.FetchURL == "" {
			return nil, zerr.With(zerr.New("catalogue entry without a url"), "module", r.Name)
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, zerr.With(zerr.New("duplicate catalogue entry"), "module", r.Name)
		}
		c.byName[r.Name] = i
	}
	return c, nil
}

// Lookup returns the record of module.
func (c *Catalogue) Lookup(module string) (domain.ModuleRecord, error) {
	i, ok := c.byName[module]
	if !ok {
		return domain.ModuleRecord{}, zerr.With(domain.ErrUnknownModule, "module", module)
	}
	return c.records[i], nil
}

// Modules returns every record in file order.
func (c *Catalogue) Modules() []domain.ModuleRecord {
	return slices.Clone(c.records)
}
