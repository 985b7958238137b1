package mongodb

import (
	"context"
	"fmt"
	"time"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type withdrawalRepository struct {
	collection *mongo.Collection
}

func NewWithdrawalRepository(db *mongo.Database) interfaces.WithdrawalRepository {
	return &withdrawalRepository{
		collection: db.Collection("withdrawal_requests"),
	}
}

func (r *withdrawalRepository) Create(ctx context.Context, request *models.WithdrawalRequest) error {
	request.ID = primitive.NewObjectID()
	request.Status = models.WithdrawalStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return apperrors.NewUpstreamError("create withdrawal request", err)
	}

	return nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("withdrawal request", id.Hex())
		}
		return nil, apperrors.NewUpstreamError("get withdrawal request", err)
	}

	return &request, nil
}

func (r *withdrawalRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.WithdrawalRequest, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"sponsor_id": sponsorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, apperrors.NewUpstreamError("find withdrawal requests by sponsor", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.WithdrawalRequest
	for cursor.Next(ctx) {
		var request models.WithdrawalRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, apperrors.NewUpstreamError("decode withdrawal request", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *withdrawalRepository) GetByStatus(ctx context.Context, status models.WithdrawalStatus, params *utils.PaginationParams) ([]*models.WithdrawalRequest, int64, error) {
	filter := bson.M{"status": status}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("count withdrawal requests", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("list withdrawal requests", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.WithdrawalRequest
	for cursor.Next(ctx) {
		var request models.WithdrawalRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, 0, apperrors.NewUpstreamError("decode withdrawal request", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *withdrawalRepository) SumCompletedBySponsor(ctx context.Context, sponsorID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"sponsor_id": sponsorID,
			"status":     models.WithdrawalStatusCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperrors.NewUpstreamError("sum completed withdrawals", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var result struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&result); err != nil {
			return 0, apperrors.NewUpstreamError("decode withdrawal sum", err)
		}
		return result.Total, nil
	}

	return 0, nil
}

// UpdateStatus applies the transition only when the row is still in the
// expected prior status. Two racing admin actions cannot both win: the
// second one fails the precondition and gets a validation error back.
func (r *withdrawalRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.WithdrawalStatus, updates map[string]interface{}) error {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return apperrors.NewUpstreamError("update withdrawal status", err)
	}

	if result.MatchedCount == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		return apperrors.NewValidationError("status",
			fmt.Sprintf("withdrawal request is %s, expected %s", current.Status, from))
	}

	return nil
}
