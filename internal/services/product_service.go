package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/validation"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes mutation events after successful writes.
// Publishing is best-effort: failures are logged, never surfaced to callers.
type EventPublisher interface {
	PublishMutation(entity, action string, id int64) error
}

// ProductService interprets product command envelopes. It validates every
// provided field before any write, performs at most one lookup plus one
// write per request, and holds no lock across them: a duplicate key on
// insert or zero affected rows on delete is a lost race, never retried.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// Execute dispatches one command envelope to a terminal outcome. A nil
// product with a nil error is the successful delete outcome.
func (s *ProductService) Execute(cmd models.ProductCommand) (*models.Product, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, envelopeFailure(err)
	}

	switch strings.ToLower(strings.TrimSpace(cmd.Command)) {
	case models.CommandCreate:
		return s.create(*cmd.ID, cmd.ProductFields)
	case models.CommandUpdate:
		return s.update(*cmd.ID, cmd.ProductFields)
	case models.CommandDelete:
		return nil, s.delete(*cmd.ID, cmd.ProductFields)
	default:
		return nil, ErrInvalidCommand
	}
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

func (s *ProductService) create(id int64, f models.ProductFields) (*models.Product, error) {
	if fail := validateProductRequired(f); fail != nil {
		return nil, fail
	}

	exists, err := s.repo.Exists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	if exists {
		return nil, fmt.Errorf("product id %d: %w", id, ErrConflict)
	}

	product := &models.Product{
		ID:       id,
		Name:     *f.Name,
		Price:    *f.Price,
		Quantity: int64(*f.Quantity),
	}
	if f.Description != nil {
		product.Description = *f.Description
	}

	if err := s.repo.Create(product); err != nil {
		// Two creates can race past the existence check; the store's
		// primary key turns the loser into a conflict.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("product id %d: %w", id, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create product %d: %w", id, err)
	}

	s.publish("created", id)
	return product, nil
}

func (s *ProductService) update(id int64, f models.ProductFields) (*models.Product, error) {
	// Rejected before the lookup: an empty update is a bad request even
	// when the id does not exist.
	if f.Name == nil && f.Description == nil && f.Price == nil && f.Quantity == nil {
		return nil, &validation.Failure{Reason: "no updatable fields"}
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	if fail := validateProductPartial(f); fail != nil {
		return nil, fail
	}

	// All provided fields passed; merge onto the stored record.
	if f.Name != nil {
		product.Name = *f.Name
	}
	if f.Description != nil {
		product.Description = *f.Description
	}
	if f.Price != nil {
		product.Price = *f.Price
	}
	if f.Quantity != nil {
		product.Quantity = int64(*f.Quantity)
	}

	rows, err := s.repo.Update(product)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("product %d: %w", id, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	if rows == 0 {
		// Deleted between lookup and write.
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	s.publish("updated", id)
	return product, nil
}

func (s *ProductService) delete(id int64, f models.ProductFields) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get product %d: %w", id, err)
	}

	if fail := validateProductRequired(f); fail != nil {
		return fail
	}

	// Confirmation by match: the caller must restate the record's current
	// values; numeric comparison is exact, no epsilon.
	matches := product.Name == *f.Name &&
		product.Price == *f.Price &&
		product.Quantity == int64(*f.Quantity)
	if f.Description != nil {
		matches = matches && product.Description == *f.Description
	}
	if !matches {
		return fmt.Errorf("delete product %d: %w", id, ErrConfirmationMismatch)
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if rows == 0 {
		// Lost the commit race; indistinguishable from a mismatch by contract.
		return fmt.Errorf("delete product %d: %w", id, ErrConfirmationMismatch)
	}

	s.publish("deleted", id)
	return nil
}

func (s *ProductService) publish(action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation("product", action, id); err != nil {
		log.Printf("Warning: failed to publish product %s event for id %d: %v", action, id, err)
	}
}

// validateProductRequired checks the full field set, used by create and by
// delete confirmation. First failure wins, in field order: name,
// description, price, quantity.
func validateProductRequired(f models.ProductFields) *validation.Failure {
	if fail := validation.Require("name", f.Name, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.IfPresent("description", f.Description, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.Require("price", f.Price, validation.NonNegativeNumber); fail != nil {
		return fail
	}
	return validation.Require("quantity", f.Quantity, validation.NonNegativeInteger)
}

// validateProductPartial checks only the fields present in the request,
// in the same order as validateProductRequired.
func validateProductPartial(f models.ProductFields) *validation.Failure {
	if fail := validation.IfPresent("name", f.Name, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.IfPresent("description", f.Description, validation.NonBlank); fail != nil {
		return fail
	}
	if fail := validation.IfPresent("price", f.Price, validation.NonNegativeNumber); fail != nil {
		return fail
	}
	return validation.IfPresent("quantity", f.Quantity, validation.NonNegativeInteger)
}
