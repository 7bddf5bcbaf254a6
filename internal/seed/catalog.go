// Package seed loads a YAML recipe catalog into the graph store.
// It is development tooling; the API never writes.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleCatalog []byte

// Catalog is the fixture file layout: authors own their recipes
type Catalog struct {
	Authors []Author `yaml:"authors"`
}

// Author is one author with the recipes they wrote
type Author struct {
	Name    string   `yaml:"name"`
	Recipes []Recipe `yaml:"recipes"`
}

// Recipe is one catalog entry
type Recipe struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	SkillLevel      string   `yaml:"skillLevel"`
	CookingTime     int64    `yaml:"cookingTime"`
	PreparationTime int64    `yaml:"preparationTime"`
	Ingredients     []string `yaml:"ingredients"`
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// LoadFile reads a catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Sample returns the catalog bundled with the binary
func Sample() (*Catalog, error) {
	return Parse(sampleCatalog)
}

// Validate checks that names are present and that recipe names are unique across authors
func (c *Catalog) Validate() error {
	seen := make(map[string]string)
	for i, author := range c.Authors {
		if strings.TrimSpace(author.Name) == "" {
			return fmt.Errorf("author %d: name is required", i)
		}
		for j, recipe := range author.Recipes {
			name := strings.TrimSpace(recipe.Name)
			if name == "" {
				return fmt.Errorf("author %q recipe %d: name is required", author.Name, j)
			}
			if owner, dup := seen[name]; dup {
				return fmt.Errorf("recipe %q listed under both %q and %q", name, owner, author.Name)
			}
			seen[name] = author.Name
		}
	}
	return nil
}

// RecipeCount returns the number of recipes across all authors
func (c *Catalog) RecipeCount() int {
	n := 0
	for _, author := range c.Authors {
		n += len(author.Recipes)
	}
	return n
}
