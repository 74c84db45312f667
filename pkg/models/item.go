// Package models defines the wire types shared by the catalog server and client.
package models

// Item is a single catalog entry. The collection is persisted as one ordered
// JSON array; entries are append-only and immutable once listed.
type Item struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// PriceValue returns the item's price, with absent prices counting as zero.
func (i Item) PriceValue() float64 {
	if i.Price == nil {
		return 0
	}
	return *i.Price
}

// Stats aggregates the full collection.
type Stats struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"averagePrice"`
}

// CategoryList is the response for the category index endpoint.
type CategoryList struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

// CacheStatus describes the server's stats cache. CacheAge is milliseconds
// since the last computation; CacheAge and LastUpdated are null when nothing
// is cached.
type CacheStatus struct {
	Cached      bool    `json:"cached"`
	CacheAge    *int64  `json:"cacheAge"`
	CacheValid  bool    `json:"cacheValid"`
	LastUpdated *string `json:"lastUpdated"`
}

// Price is a convenience for building *float64 literals in item drafts.
func Price(v float64) *float64 {
	return &v
}
