package repositories

import (
	"errors"
	"fmt"

	"warung/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// The *gorm.DB must be opened with TranslateError so driver-level unique
// violations surface as gorm.ErrDuplicatedKey.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Exists reports whether a product with the given id is present.
func (r *GORMProductRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product row. The caller supplies the id.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product %d: %w", product.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create product %d: %w", product.ID, err)
	}
	return nil
}

// Update replaces all mutable columns of the row in a single statement.
// Zero values are written too, so the row always matches the merged record.
func (r *GORMProductRepository) Update(product *models.Product) (int64, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("Name", "Description", "Price", "Quantity").
		Updates(product)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("product %d: %w", product.ID, ErrDuplicateKey)
		}
		return 0, fmt.Errorf("failed to update product %d: %w", product.ID, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the row. Deletion is physical; the model carries no
// DeletedAt column, so a later create may reuse the id.
func (r *GORMProductRepository) Delete(id int64) (int64, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
