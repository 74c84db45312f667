// Package catalog stores the item collection and serves the /api/items
// endpoints over it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/pkg/models"
)

// ErrNotFound is returned when no item carries the requested ID.
var ErrNotFound = errors.New("item not found")

// Store reads and writes the JSON collection file. Every read goes to disk
// so edits made outside the process are visible without a restart; writes
// serialize through a mutex and land via a temp file plus rename.
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex // guards the read-modify-write cycle of Create and Seed
}

// NewStore creates a store backed by the JSON file at path. The file does
// not need to exist yet; a missing file reads as an empty collection.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Path returns the backing file's location.
func (s *Store) Path() string {
	return s.path
}

// Load returns every item in the collection. A missing file is not an
// error: it yields an empty slice, the same as an empty array on disk.
func (s *Store) Load() ([]models.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("collection file absent, treating as empty",
				zap.String("path", s.path))
			return []models.Item{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", s.path, err)
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", s.path, err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Get returns the item with the given ID, or ErrNotFound.
func (s *Store) Get(id int64) (models.Item, error) {
	items, err := s.Load()
	if err != nil {
		return models.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrNotFound
}

// Categories returns the distinct non-empty categories in sorted order.
func (s *Store) Categories() ([]string, error) {
	items, err := s.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	categories := make([]string, 0, len(items))
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		categories = append(categories, it.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Create assigns the item an ID and creation timestamp, appends it to the
// collection, and persists. IDs derive from the current time in
// milliseconds and step past any collision, so rapid inserts stay unique.
func (s *Store) Create(item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Load()
	if err != nil {
		return models.Item{}, err
	}

	taken := make(map[int64]bool, len(items))
	for _, it := range items {
		taken[it.ID] = true
	}
	id := s.now().UnixMilli()
	for taken[id] {
		id++
	}

	item.ID = id
	item.CreatedAt = s.now().UTC().Format(time.RFC3339)
	items = append(items, item)

	if err := s.save(items); err != nil {
		return models.Item{}, err
	}
	s.logger.Info("item created",
		zap.Int64("id", item.ID),
		zap.String("name", item.Name))
	return item, nil
}

// Seed writes the given items only when the backing file does not exist
// yet. It returns true when the file was written.
func (s *Store) Seed(items []models.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat collection %s: %w", s.path, err)
	}

	if err := s.save(items); err != nil {
		return false, err
	}
	s.logger.Info("collection seeded",
		zap.String("path", s.path),
		zap.Int("items", len(items)))
	return true, nil
}

// save writes the collection atomically: marshal, write a sibling temp
// file, rename over the target.
func (s *Store) save(items []models.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write collection %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace collection %s: %w", s.path, err)
	}
	return nil
}
