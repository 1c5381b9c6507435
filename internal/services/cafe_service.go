package services

import (
	"context"
	"fmt"

	"cafes/internal/forms"
	"cafes/internal/models"
	"cafes/internal/repositories"
)

// CafeService handles business logic related to cafes.
type CafeService struct {
	repo      repositories.CafeRepository
	validator *forms.Validator
	publisher EventPublisher
}

// NewCafeService creates a new CafeService. publisher may be nil, in which
// case no events are sent.
func NewCafeService(repo repositories.CafeRepository, validator *forms.Validator, publisher EventPublisher) *CafeService {
	return &CafeService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
	}
}

// ListCafes retrieves all cafes in insertion order.
func (s *CafeService) ListCafes(ctx context.Context) ([]models.Cafe, error) {
	return s.repo.GetAll(ctx)
}

// GetCafe retrieves a single cafe by its ID.
func (s *CafeService) GetCafe(ctx context.Context, id uint) (*models.Cafe, error) {
	return s.repo.GetByID(ctx, id)
}

// EditForm returns the current values of a cafe as a form, ready to be
// edited and submitted back through UpdateCafe.
func (s *CafeService) EditForm(ctx context.Context, id uint) (forms.CafeForm, error) {
	cafe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return forms.CafeForm{}, err
	}
	return forms.FromCafe(*cafe), nil
}

// CreateCafe validates form and stores it as a new cafe. A rejected form
// returns forms.ValidationErrors and nothing is stored.
func (s *CafeService) CreateCafe(ctx context.Context, form forms.CafeForm) (*models.Cafe, error) {
	input, err := s.validator.Validate(form)
	if err != nil {
		return nil, err
	}

	cafe, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create cafe '%s': %w", input.Name, err)
	}

	s.publish(EventCafeCreated, cafe.ID, cafe.Name)
	return cafe, nil
}

// UpdateCafe validates form and replaces every field of the cafe with the
// given ID.
func (s *CafeService) UpdateCafe(ctx context.Context, id uint, form forms.CafeForm) (*models.Cafe, error) {
	input, err := s.validator.Validate(form)
	if err != nil {
		return nil, err
	}

	cafe, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update cafe %d: %w", id, err)
	}

	s.publish(EventCafeUpdated, cafe.ID, cafe.Name)
	return cafe, nil
}

// DeleteCafe deletes a cafe by its ID.
func (s *CafeService) DeleteCafe(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cafe %d: %w", id, err)
	}

	s.publish(EventCafeDeleted, id, "")
	return nil
}
