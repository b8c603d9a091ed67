package repositories

import (
	"warung/internal/models"
)

// ProductRepository defines the interface for product data access.
// Each call is atomic on its own; callers hold no locks across calls and
// treat zero affected rows or ErrDuplicateKey as a lost race.
type ProductRepository interface {
	Exists(id int64) (bool, error)
	GetByID(id int64) (*models.Product, error)
	Create(product *models.Product) error
	// Update replaces every mutable field of the row in one statement and
	// returns the number of rows affected.
	Update(product *models.Product) (int64, error)
	// Delete removes the row and returns the number of rows affected.
	Delete(id int64) (int64, error)
}
