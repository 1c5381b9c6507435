package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cafes/internal/models"

	"gorm.io/gorm"
)

// GORMCafeRepository is a GORM implementation of CafeRepository.
type GORMCafeRepository struct {
	db *gorm.DB
	// mu serializes the uniqueness check and the write that follows it.
	// The unique indexes still reject duplicates written by other processes.
	mu sync.Mutex
}

// NewGORMCafeRepository creates a new instance of GORMCafeRepository.
// The db should be opened with TranslateError so that unique violations
// surface as gorm.ErrDuplicatedKey.
func NewGORMCafeRepository(db *gorm.DB) *GORMCafeRepository {
	return &GORMCafeRepository{
		db: db,
	}
}

// GetAll retrieves all cafes ordered by ID.
func (r *GORMCafeRepository) GetAll(ctx context.Context) ([]models.Cafe, error) {
	cafes := make([]models.Cafe, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all cafes: %w", err)
	}
	return cafes, nil
}

// GetByID retrieves a single cafe by its ID.
func (r *GORMCafeRepository) GetByID(ctx context.Context, id uint) (*models.Cafe, error) {
	var cafe models.Cafe
	if err := r.db.WithContext(ctx).First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
		}
		return nil, fmt.Errorf("failed to get cafe by ID %d: %w", id, err)
	}
	return &cafe, nil
}

// Create inserts a new cafe built from input.
func (r *GORMCafeRepository) Create(ctx context.Context, input models.CafeInput) (*models.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cafe models.Cafe
	cafe.Apply(input)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, 0, input); err != nil {
			return err
		}
		return tx.Create(&cafe).Error
	})
	if err != nil {
		return nil, writeError("create", err)
	}
	return &cafe, nil
}

// Update replaces every user-settable field of the cafe with the given ID.
func (r *GORMCafeRepository) Update(ctx context.Context, id uint, input models.CafeInput) (*models.Cafe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cafe models.Cafe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cafe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
			}
			return err
		}
		if err := checkUnique(tx, id, input); err != nil {
			return err
		}
		cafe.Apply(input)
		return tx.Save(&cafe).Error
	})
	if err != nil {
		return nil, writeError("update", err)
	}
	return &cafe, nil
}

// Delete removes the cafe with the given ID.
func (r *GORMCafeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Cafe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cafe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cafe with ID %d: %w", id, ErrCafeNotFound)
	}
	return nil
}

// checkUnique looks for another cafe, other than excludeID, that already
// uses the name or map URL of input.
func checkUnique(tx *gorm.DB, excludeID uint, input models.CafeInput) error {
	q := tx.Model(&models.Cafe{}).Where("(name = ? OR map_url = ?)", input.Name, input.MapURL)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var existing models.Cafe
	if err := q.Take(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check cafe uniqueness: %w", err)
	}
	if existing.Name == input.Name {
		return fmt.Errorf("cafe named '%s' already exists: %w", input.Name, ErrDuplicateKey)
	}
	return fmt.Errorf("cafe with map URL '%s' already exists: %w", input.MapURL, ErrDuplicateKey)
}

func writeError(op string, err error) error {
	switch {
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrCafeNotFound):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("failed to %s cafe: %w", op, ErrDuplicateKey)
	}
	return fmt.Errorf("failed to %s cafe: %w", op, err)
}
