package interfaces

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SponsorRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, sponsor *models.Sponsor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsor, error)
	GetByEmail(ctx context.Context, email string) (*models.Sponsor, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Sponsor, int64, error)
	GetAll(ctx context.Context) ([]*models.Sponsor, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
