package repositories

import (
	"errors"
	"fmt"

	"warung/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Exists reports whether a user with the given id is present.
func (r *GORMUserRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return count > 0, nil
}

// GetByID retrieves a single user by their ID from the database.
func (r *GORMUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user row. Both the id and the username unique index
// can reject the insert; either surfaces as ErrDuplicateKey.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %d: %w", user.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user %d: %w", user.ID, err)
	}
	return nil
}

// Update replaces all mutable columns of the row in a single statement.
// Renaming to a taken username trips the unique index here.
func (r *GORMUserRepository) Update(user *models.User) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("Username", "Email", "PasswordHash").
		Updates(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("user %d: %w", user.ID, ErrDuplicateKey)
		}
		return 0, fmt.Errorf("failed to update user %d: %w", user.ID, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the row.
func (r *GORMUserRepository) Delete(id int64) (int64, error) {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
