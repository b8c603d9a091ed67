package repositories

import (
	"fmt"
	"sync"

	"warung/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It enforces the same uniqueness rules as the durable store: unique id on
// create, unique username on create and update.
type MockUserRepository struct {
	users map[int64]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]models.User),
	}
}

// Exists reports whether a user with the given id is present.
func (r *MockUserRepository) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// GetByID returns a copy of the user with the given id.
func (r *MockUserRepository) GetByID(id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

// Create inserts the user, rejecting a taken id or username.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %d: %w", user.ID, ErrDuplicateKey)
	}
	if r.usernameTakenLocked(user.Username, user.ID) {
		return fmt.Errorf("username %q: %w", user.Username, ErrDuplicateKey)
	}
	r.users[user.ID] = *user
	return nil
}

// Update replaces the stored user when present, rejecting a rename to a
// taken username.
func (r *MockUserRepository) Update(user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return 0, nil
	}
	if r.usernameTakenLocked(user.Username, user.ID) {
		return 0, fmt.Errorf("username %q: %w", user.Username, ErrDuplicateKey)
	}
	r.users[user.ID] = *user
	return 1, nil
}

// Delete removes the user when present.
func (r *MockUserRepository) Delete(id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

// usernameTakenLocked reports whether another user already holds username.
// Caller must hold the write lock.
func (r *MockUserRepository) usernameTakenLocked(username string, selfID int64) bool {
	for id, u := range r.users {
		if id != selfID && u.Username == username {
			return true
		}
	}
	return false
}
