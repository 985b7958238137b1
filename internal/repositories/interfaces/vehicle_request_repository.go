package interfaces

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRequestRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, request *models.VehicleRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.VehicleRequest, error)

	// Sponsor association
	GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.VehicleRequest, error)

	// Review queue
	GetByStatus(ctx context.Context, status models.RequestStatus, params *utils.PaginationParams) ([]*models.VehicleRequest, int64, error)

	// UpdateStatus transitions a request from an expected prior status; the
	// precondition is enforced atomically in the store.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, updates map[string]interface{}) error
}
