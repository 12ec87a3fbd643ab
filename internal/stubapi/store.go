// Package stubapi serves the catalog REST contract from memory. It backs the
// integration tests and the stub-server command.
package stubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/themilho/product-catalog/internal/domain"
	apperrors "github.com/themilho/product-catalog/pkg/errors"
)

// Store keeps products in insertion order and assigns sequential ids.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int
}

// NewStore returns a store holding seed. Ids continue after the largest seed id.
func NewStore(seed []domain.Product) *Store {
	s := &Store{nextID: 1}
	for _, p := range seed {
		s.products = append(s.products, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// List returns a copy of every product.
func (s *Store) List(_ context.Context) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get returns product id.
func (s *Store) Get(_ context.Context, id int) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return domain.Product{}, notFound(id)
	}
	return s.products[i], nil
}

// Create stores in under the next id.
func (s *Store) Create(_ context.Context, in domain.ProductInput) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := in.Product(s.nextID)
	s.nextID++
	s.products = append(s.products, p)
	return p
}

// Update applies patch to product id. The merged product must still be valid.
func (s *Store) Update(_ context.Context, id int, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.Product{}, notFound(id)
	}

	updated := s.products[i].Apply(patch)
	if err := updated.Input().Validate(); err != nil {
		return domain.Product{}, err
	}
	s.products[i] = updated
	return updated, nil
}

// Delete removes product id.
func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// Len returns the number of stored products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *Store) index(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int) error {
	return apperrors.NotFound("product", strconv.Itoa(id))
}

// LoadSeed reads products from a JSON file holding either an array or an
// object with a "products" array.
func LoadSeed(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err == nil {
		return products, nil
	}

	var db struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return db.Products, nil
}
