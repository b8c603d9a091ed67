package repositories

import (
	"fmt"
	"sync"

	"warung/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Every method is atomic under a single mutex, which makes it a faithful
// stand-in for the store's per-call atomicity in tests and for the "memory"
// database driver.
type MockProductRepository struct {
	products map[int64]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int64]models.Product),
	}
}

// Exists reports whether a product with the given id is present.
func (r *MockProductRepository) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}

// GetByID returns a copy of the product with the given id.
func (r *MockProductRepository) GetByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

// Create inserts the product, rejecting a taken id.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("product %d: %w", product.ID, ErrDuplicateKey)
	}
	r.products[product.ID] = *product
	return nil
}

// Update replaces the stored product when present.
func (r *MockProductRepository) Update(product *models.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return 0, nil
	}
	r.products[product.ID] = *product
	return 1, nil
}

// Delete removes the product when present.
func (r *MockProductRepository) Delete(id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}
