// Package query implements the catalog's list pipeline: category filter,
// free-text search, stable sort, and pagination. The same pipeline serves
// /api/items on the server and runs client-side when a legacy server only
// returns the full collection, so Apply is a pure function of its inputs and
// never mutates the slice it is given.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ruchirachamara/assessment/pkg/models"
)

// Defaults and bounds for list queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultSort  = "id"
)

// sortFields whitelists the fields a query may sort by. Unknown fields fall
// back to id rather than erroring.
var sortFields = map[string]bool{
	"id":        true,
	"name":      true,
	"price":     true,
	"category":  true,
	"createdAt": true,
}

// Query carries the parameters of one catalog list request. The zero value
// is valid and normalizes to the defaults.
type Query struct {
	Q         string
	Category  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ParseQuery reads a Query from URL parameters. Malformed numbers are
// dropped silently; enum values are validated during normalization.
func ParseQuery(values url.Values) Query {
	q := Query{
		Q:         values.Get("q"),
		Category:  values.Get("category"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil {
		q.Limit = n
	}
	return q
}

// Values encodes the query as URL parameters, omitting unset fields.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// normalized applies defaults and clamps. Invalid input never errors.
func (q Query) normalized() Query {
	q.Q = strings.TrimSpace(q.Q)
	q.Category = strings.TrimSpace(q.Category)
	if !sortFields[q.SortBy] {
		q.SortBy = DefaultSort
	}
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Pagination describes the window a PageResult covers.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	NextPage     *int `json:"nextPage"`
	PrevPage     *int `json:"prevPage"`
}

// SearchMeta echoes the normalized query along with the match count taken
// after filtering but before the page window is cut.
type SearchMeta struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	SortBy       string `json:"sortBy"`
	SortOrder    string `json:"sortOrder"`
	ResultsFound int    `json:"resultsFound"`
}

// PageResult is one page of catalog items plus its metadata. Pagination's
// TotalItems always equals Search.ResultsFound.
type PageResult struct {
	Items      []models.Item `json:"items"`
	Pagination Pagination    `json:"pagination"`
	Search     SearchMeta    `json:"search"`
}

// Apply runs the pipeline over items. Steps in order: category filter,
// free-text search, stable sort, pagination. A page past the last one yields
// empty Items while the metadata still reports the real totals.
func Apply(items []models.Item, q Query) PageResult {
	q = q.normalized()

	matched := filterCategory(items, q.Category)
	matched = filterSearch(matched, q.Q)
	found := len(matched)

	sortItems(matched, q.SortBy, q.SortOrder == "desc")

	totalPages := 0
	if found > 0 {
		totalPages = (found + q.Limit - 1) / q.Limit
	}

	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	page := []models.Item{}
	if start < found {
		if end > found {
			end = found
		}
		page = matched[start:end]
	}

	hasNext := q.Page < totalPages
	hasPrev := q.Page > 1
	var next, prev *int
	if hasNext {
		n := q.Page + 1
		next = &n
	}
	if hasPrev {
		p := q.Page - 1
		prev = &p
	}

	return PageResult{
		Items: page,
		Pagination: Pagination{
			CurrentPage:  q.Page,
			TotalPages:   totalPages,
			TotalItems:   found,
			ItemsPerPage: q.Limit,
			HasNextPage:  hasNext,
			HasPrevPage:  hasPrev,
			NextPage:     next,
			PrevPage:     prev,
		},
		Search: SearchMeta{
			Query:        q.Q,
			Category:     q.Category,
			SortBy:       q.SortBy,
			SortOrder:    q.SortOrder,
			ResultsFound: found,
		},
	}
}

// filterCategory keeps items whose category equals the filter
// case-insensitively. It always returns a fresh slice so later stages can
// sort in place without touching the caller's data.
func filterCategory(items []models.Item, category string) []models.Item {
	out := make([]models.Item, 0, len(items))
	if category == "" {
		return append(out, items...)
	}
	for i := range items {
		if strings.EqualFold(items[i].Category, category) {
			out = append(out, items[i])
		}
	}
	return out
}

// filterSearch keeps items where any searchable field contains the term as a
// case-insensitive substring. No tokenization, no ranking.
func filterSearch(items []models.Item, term string) []models.Item {
	term = strings.ToLower(term)
	if term == "" {
		return items
	}
	matched := make([]models.Item, 0, len(items))
	for i := range items {
		if itemMatches(items[i], term) {
			matched = append(matched, items[i])
		}
	}
	return matched
}

// itemMatches ORs the term across name, category, description, and the
// decimal renderings of id and price. An absent price contributes no field.
func itemMatches(it models.Item, term string) bool {
	if strings.Contains(strings.ToLower(it.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Category), term) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Description), term) {
		return true
	}
	if strings.Contains(strconv.FormatInt(it.ID, 10), term) {
		return true
	}
	if it.Price != nil && strings.Contains(strconv.FormatFloat(*it.Price, 'f', -1, 64), term) {
		return true
	}
	return false
}

// sortItems stably sorts in place. Descending order inverts the comparator
// rather than reversing afterwards, which keeps equal elements in their
// original relative order either way.
func sortItems(items []models.Item, field string, desc bool) {
	less := lessFunc(field)
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// lessFunc selects the comparator for a whitelisted sort field. String
// fields compare lowercased with missing values as the empty string; price
// compares numerically with absent prices as zero.
func lessFunc(field string) func(a, b models.Item) bool {
	switch field {
	case "name":
		return func(a, b models.Item) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "price":
		return func(a, b models.Item) bool {
			return a.PriceValue() < b.PriceValue()
		}
	case "category":
		return func(a, b models.Item) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case "createdAt":
		return func(a, b models.Item) bool {
			return strings.ToLower(a.CreatedAt) < strings.ToLower(b.CreatedAt)
		}
	default:
		return func(a, b models.Item) bool {
			return a.ID < b.ID
		}
	}
}
