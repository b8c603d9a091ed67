package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"warung/internal/hashing"
	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/validation"

	"github.com/go-playground/validator/v10"
)

// UserService interprets user command envelopes. It mirrors ProductService
// with one extra rule: a submitted password goes through the credential
// hasher before it is persisted or compared, so plaintext never reaches a
// repository and never appears in a response.
type UserService struct {
	repo     repositories.UserRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// Execute dispatches one command envelope to a terminal outcome. A nil user
// with a nil error is the successful delete outcome.
func (s *UserService) Execute(cmd models.UserCommand) (*models.User, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, envelopeFailure(err)
	}

	switch strings.ToLower(strings.TrimSpace(cmd.Command)) {
	case models.CommandCreate:
		return s.create(*cmd.ID, cmd.UserFields)
	case models.CommandUpdate:
		return s.update(*cmd.ID, cmd.UserFields)
	case models.CommandDelete:
		return nil, s.delete(*cmd.ID, cmd.UserFields)
	default:
		return nil, ErrInvalidCommand
	}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) create(id int64, f models.UserFields) (*models.User, error) {
	if fail := validateUserRequired(f); fail != nil {
		return nil, fail
	}

	exists, err := s.repo.Exists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	if exists {
		return nil, fmt.Errorf("user id %d: %w", id, ErrConflict)
	}

	user := &models.User{
		ID:           id,
		Username:     *f.Username,
		Email:        *f.Email,
		PasswordHash: hashing.Hash(*f.Password),
	}

	if err := s.repo.Create(user); err != nil {
		// Either a concurrent create of the same id, or a taken username
		// caught by the store's unique index.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("user id %d: %w", id, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user %d: %w", id, err)
	}

	s.publish("created", id)
	return user, nil
}

func (s *UserService) update(id int64, f models.UserFields) (*models.User, error) {
	// Rejected before the lookup: an empty update is a bad request even
	// when the id does not exist.
	if f.Username == nil && f.Email == nil && f.Password == nil {
		return nil, &validation.Failure{Reason: "no updatable fields"}
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	if fail := validateUserPartial(f); fail != nil {
		return nil, fail
	}

	if f.Username != nil {
		user.Username = *f.Username
	}
	if f.Email != nil {
		user.Email = *f.Email
	}
	if f.Password != nil {
		user.PasswordHash = hashing.Hash(*f.Password)
	}

	rows, err := s.repo.Update(user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("user %d: %w", id, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	s.publish("updated", id)
	return user, nil
}

func (s *UserService) delete(id int64, f models.UserFields) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get user %d: %w", id, err)
	}

	if fail := validateUserRequired(f); fail != nil {
		return fail
	}

	// The password is confirmed digest against digest, never in plaintext.
	matches := user.Username == *f.Username &&
		user.Email == *f.Email &&
		hashing.Matches(*f.Password, user.PasswordHash)
	if !matches {
		return fmt.Errorf("delete user %d: %w", id, ErrConfirmationMismatch)
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("delete user %d: %w", id, ErrConfirmationMismatch)
	}

	s.publish("deleted", id)
	return nil
}

func (s *UserService) publish(action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation("user", action, id); err != nil {
		log.Printf("Warning: failed to publish user %s event for id %d: %v", action, id, err)
	}
}

// validateUserRequired checks the full field set, used by create and by
// delete confirmation. First failure wins, in field order: username, email,
// password.
func validateUserRequired(f models.UserFields) *validation.Failure {
	if fail := validation.Require("username", f.Username, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.Require("email", f.Email, validation.EmailShape); fail != nil {
		return fail
	}
	return validation.Require("password", f.Password, validation.NonBlank)
}

// validateUserPartial checks only the fields present in the request.
func validateUserPartial(f models.UserFields) *validation.Failure {
	if fail := validation.IfPresent("username", f.Username, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.IfPresent("email", f.Email, validation.EmailShape); fail != nil {
		return fail
	}
	return validation.IfPresent("password", f.Password, validation.NonBlank)
}
