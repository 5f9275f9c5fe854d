package repositories

import (
	"context"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// CategoryRepositoryFacade defines operations for movement categories.
type CategoryRepositoryFacade interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
