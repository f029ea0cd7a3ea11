package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile represents the top-level YAML structure of a catalog file.
type CatalogFile struct {
	Assets []AssetEntry `yaml:"assets"`
}

// AssetEntry represents one asset kind in the YAML file.
type AssetEntry struct {
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
	Count int    `yaml:"count"`
	Wild  bool   `yaml:"wild,omitempty"`
}

// ParseCatalog parses YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	entries := make([]CatalogEntry, 0, len(cf.Assets))
	for _, a := range cf.Assets {
		kind, err := ParseKind(a.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse catalog YAML: %w", err)
		}
		entries = append(entries, CatalogEntry{
			Kind:  kind,
			Value: a.Value,
			Count: a.Count,
			Wild:  a.Wild,
		})
	}
	return NewCatalog(entries)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// MarshalCatalog renders a catalog in the same YAML layout ParseCatalog reads.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	var cf CatalogFile
	for _, e := range c.Entries() {
		cf.Assets = append(cf.Assets, AssetEntry{
			Kind:  e.Kind.String(),
			Value: e.Value,
			Count: e.Count,
			Wild:  e.Wild,
		})
	}
	return yaml.Marshal(cf)
}
