// Package seed ships a starter collection for first runs of catalogd.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ruchirachamara/assessment/pkg/models"
)

//go:embed items.yaml
var seedRawData []byte

// seedFile is the top-level structure of the embedded YAML.
type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       *float64 `yaml:"price"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	CreatedAt   string   `yaml:"created_at"`
}

// Collection provides lazy-parsed access to the embedded starter items.
type Collection struct {
	once  sync.Once
	items []models.Item
	err   error
}

// NewCollection creates a Collection that parses the embedded YAML on
// first access.
func NewCollection() *Collection {
	return &Collection{}
}

// Items returns a copy of the starter items.
func (c *Collection) Items() ([]models.Item, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.Item, len(c.items))
	copy(cp, c.items)
	return cp, nil
}

// load parses the embedded YAML seed data.
func (c *Collection) load() {
	var f seedFile
	if err := yaml.Unmarshal(seedRawData, &f); err != nil {
		c.err = fmt.Errorf("seed: parse yaml: %w", err)
		return
	}
	items := make([]models.Item, 0, len(f.Items))
	for _, si := range f.Items {
		items = append(items, models.Item{
			ID:          si.ID,
			Name:        si.Name,
			Price:       si.Price,
			Category:    si.Category,
			Description: si.Description,
			CreatedAt:   si.CreatedAt,
		})
	}
	c.items = items
}
