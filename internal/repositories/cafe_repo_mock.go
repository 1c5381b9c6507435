package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cafes/internal/models"
)

// MockCafeRepository is an in-memory implementation of CafeRepository.
type MockCafeRepository struct {
	cafes  map[uint]models.Cafe
	nextID uint
	mu     sync.RWMutex
}

// NewMockCafeRepository creates a new instance of MockCafeRepository.
func NewMockCafeRepository() *MockCafeRepository {
	return &MockCafeRepository{
		cafes:  make(map[uint]models.Cafe),
		nextID: 1,
	}
}

// GetAll returns all cafes ordered by ID.
func (r *MockCafeRepository) GetAll(_ context.Context) ([]models.Cafe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cafeList := make([]models.Cafe, 0, len(r.cafes))
	for _, c := range r.cafes {
		cafeList = append(cafeList, c)
	}
	sort.Slice(cafeList, func(i, j int) bool { return cafeList[i].ID < cafeList[j].ID })
	return cafeList, nil
}

// GetByID returns a cafe by its ID.
func (r *MockCafeRepository) GetByID(_ context.Context, id uint) (*models.Cafe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cafe, ok := r.cafes[id]
	if !ok {
		return nil, fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
	}
	return &cafe, nil
}

// Create adds a new cafe. IDs are never handed out twice.
func (r *MockCafeRepository) Create(_ context.Context, input models.CafeInput) (*models.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflict(0, input); err != nil {
		return nil, err
	}

	now := time.Now()
	cafe := models.Cafe{ID: r.nextID, CreatedAt: now, UpdatedAt: now}
	cafe.Apply(input)
	r.nextID++
	r.cafes[cafe.ID] = cafe
	return &cafe, nil
}

// Update modifies an existing cafe.
func (r *MockCafeRepository) Update(_ context.Context, id uint, input models.CafeInput) (*models.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cafe, ok := r.cafes[id]
	if !ok {
		return nil, fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
	}
	if err := r.conflict(id, input); err != nil {
		return nil, err
	}

	cafe.Apply(input)
	cafe.UpdatedAt = time.Now()
	r.cafes[id] = cafe
	return &cafe, nil
}

// Delete removes a cafe by its ID.
func (r *MockCafeRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cafes[id]; !ok {
		return fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
	}
	delete(r.cafes, id)
	return nil
}

// conflict must be called with mu held.
func (r *MockCafeRepository) conflict(excludeID uint, input models.CafeInput) error {
	for id, c := range r.cafes {
		if id == excludeID {
			continue
		}
		if c.Name == input.Name {
			return fmt.Errorf("cafe named '%s' already exists: %w", input.Name, ErrDuplicateKey)
		}
		if c.MapURL == input.MapURL {
			return fmt.Errorf("cafe with map URL '%s' already exists: %w", input.MapURL, ErrDuplicateKey)
		}
	}
	return nil
}
