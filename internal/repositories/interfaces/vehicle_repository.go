package interfaces

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Composite identity lookup: numeric ids repeat across categories, so the
	// pair is the only safe key.
	GetByKey(ctx context.Context, key models.VehicleKey) (*models.Vehicle, error)

	// Sponsor association
	GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Vehicle, error)
	ReassignSponsor(ctx context.Context, id primitive.ObjectID, sponsorID primitive.ObjectID) error

	// Availability
	UpdateAvailability(ctx context.Context, id primitive.ObjectID, available bool) error

	// Id allocation for newly approved vehicles, per category.
	NextVehicleID(ctx context.Context, category models.VehicleCategory) (int64, error)

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
