package repositories

import (
	"context"

	"cafes/internal/models"
)

// CafeRepository defines the interface for cafe data access.
type CafeRepository interface {
	GetAll(ctx context.Context) ([]models.Cafe, error)
	GetByID(ctx context.Context, id uint) (*models.Cafe, error)
	Create(ctx context.Context, input models.CafeInput) (*models.Cafe, error)
	Update(ctx context.Context, id uint, input models.CafeInput) (*models.Cafe, error)
	Delete(ctx context.Context, id uint) error
}
