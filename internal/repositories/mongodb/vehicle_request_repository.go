package mongodb

import (
	"context"
	"fmt"
	"strings"
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

type vehicleRequestRepository struct {
	collection *mongo.Collection
}

func NewVehicleRequestRepository(db *mongo.Database) interfaces.VehicleRequestRepository {
	return &vehicleRequestRepository{
		collection: db.Collection("vehicle_requests"),
	}
}

func (r *vehicleRequestRepository) Create(ctx context.Context, request *models.VehicleRequest) error {
	request.ID = primitive.NewObjectID()
	request.Status = models.RequestStatusPending
	request.RegistrationNumber = strings.ToUpper(request.RegistrationNumber)
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return apperrors.NewUpstreamError("create vehicle request", err)
	}

	return nil
}

func (r *vehicleRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VehicleRequest, error) {
	var request models.VehicleRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("vehicle request", id.Hex())
		}
		return nil, apperrors.NewUpstreamError("get vehicle request", err)
	}

	return &request, nil
}

func (r *vehicleRequestRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.VehicleRequest, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"sponsor_id": sponsorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, apperrors.NewUpstreamError("find vehicle requests by sponsor", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.VehicleRequest
	for cursor.Next(ctx) {
		var request models.VehicleRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, apperrors.NewUpstreamError("decode vehicle request", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *vehicleRequestRepository) GetByStatus(ctx context.Context, status models.RequestStatus, params *utils.PaginationParams) ([]*models.VehicleRequest, int64, error) {
	filter := bson.M{"status": status}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("count vehicle requests", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("list vehicle requests", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.VehicleRequest
	for cursor.Next(ctx) {
		var request models.VehicleRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, 0, apperrors.NewUpstreamError("decode vehicle request", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *vehicleRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, updates map[string]interface{}) error {
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
		return apperrors.NewUpstreamError("update vehicle request status", err)
	}

	if result.MatchedCount == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		return apperrors.NewValidationError("status",
			fmt.Sprintf("vehicle request is %s, expected %s", current.Status, from))
	}

	return nil
}
