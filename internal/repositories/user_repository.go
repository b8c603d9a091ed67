package repositories

import "warung/internal/models"

// UserRepository defines the interface for user data access. Username
// uniqueness is owned by the store, not the caller: Create and Update report
// a violation as ErrDuplicateKey.
type UserRepository interface {
	Exists(id int64) (bool, error)
	GetByID(id int64) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) (int64, error)
	Delete(id int64) (int64, error)
}
