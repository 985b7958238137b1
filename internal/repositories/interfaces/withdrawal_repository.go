package interfaces

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WithdrawalRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, request *models.WithdrawalRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error)

	// Sponsor association
	GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.WithdrawalRequest, error)

	// Admin queue
	GetByStatus(ctx context.Context, status models.WithdrawalStatus, params *utils.PaginationParams) ([]*models.WithdrawalRequest, int64, error)

	// SumCompletedBySponsor totals the amounts already paid out. Only
	// completed withdrawals reduce the available balance.
	SumCompletedBySponsor(ctx context.Context, sponsorID primitive.ObjectID) (float64, error)

	// UpdateStatus transitions a withdrawal from an expected prior status
	// with a single atomic update, so two racing admin actions cannot both
	// complete the same request.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.WithdrawalStatus, updates map[string]interface{}) error
}
