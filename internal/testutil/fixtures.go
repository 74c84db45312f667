package testutil

import (
	"github.com/ruchirachamara/assessment/pkg/models"
)

// NewItem returns an Item with sensible defaults, suitable for test fixtures.
// Override individual fields with options as needed.
func NewItem(opts ...func(*models.Item)) models.Item {
	it := models.Item{
		ID:        1,
		Name:      "Test Item",
		Price:     models.Price(9.99),
		Category:  "Misc",
		CreatedAt: "2025-01-01T00:00:00Z",
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// WithID sets the item ID.
func WithID(id int64) func(*models.Item) {
	return func(it *models.Item) { it.ID = id }
}

// WithName sets the item name.
func WithName(name string) func(*models.Item) {
	return func(it *models.Item) { it.Name = name }
}

// WithPrice sets the item price.
func WithPrice(p float64) func(*models.Item) {
	return func(it *models.Item) { it.Price = models.Price(p) }
}

// WithoutPrice clears the price, like rows that predate the field.
func WithoutPrice() func(*models.Item) {
	return func(it *models.Item) { it.Price = nil }
}

// WithCategory sets the item category.
func WithCategory(c string) func(*models.Item) {
	return func(it *models.Item) { it.Category = c }
}

// WithDescription sets the item description.
func WithDescription(d string) func(*models.Item) {
	return func(it *models.Item) { it.Description = d }
}

// WithCreatedAt sets the creation timestamp.
func WithCreatedAt(ts string) func(*models.Item) {
	return func(it *models.Item) { it.CreatedAt = ts }
}
