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

type vehicleRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		counters:   db.Collection("counters"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	// Normalize registration number to uppercase
	vehicle.RegistrationNumber = strings.ToUpper(vehicle.RegistrationNumber)

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return apperrors.NewUpstreamError("create vehicle", err)
	}

	r.invalidateSponsorVehicles(ctx, vehicle.SponsorID)

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("vehicle", id.Hex())
		}
		return nil, apperrors.NewUpstreamError("get vehicle", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByKey(ctx context.Context, key models.VehicleKey) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{
		"vehicle_id": key.VehicleID,
		"category":   key.Category,
	}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFoundError("vehicle", fmt.Sprintf("%d/%s", key.VehicleID, key.Category))
		}
		return nil, apperrors.NewUpstreamError("get vehicle by key", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if reg, exists := updates["registration_number"]; exists {
		if regStr, ok := reg.(string); ok {
			updates["registration_number"] = strings.ToUpper(regStr)
		}
	}

	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return apperrors.NewUpstreamError("update vehicle", err)
	}

	r.invalidateSponsorVehicles(ctx, vehicle.SponsorID)

	return nil
}

func (r *vehicleRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Vehicle, error) {
	// Try cache first
	if r.cache != nil {
		var vehicles []*models.Vehicle
		if err := r.cache.Get(ctx, sponsorVehiclesCacheKey(sponsorID.Hex()), &vehicles); err == nil {
			return vehicles, nil
		}
	}

	cursor, err := r.collection.Find(ctx,
		bson.M{"sponsor_id": sponsorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, apperrors.NewUpstreamError("find vehicles by sponsor", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, apperrors.NewUpstreamError("decode vehicle", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	if r.cache != nil {
		r.cache.Set(ctx, sponsorVehiclesCacheKey(sponsorID.Hex()), vehicles, utils.VehiclesCacheTTL)
	}

	return vehicles, nil
}

func (r *vehicleRepository) ReassignSponsor(ctx context.Context, id primitive.ObjectID, sponsorID primitive.ObjectID) error {
	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"sponsor_id": sponsorID,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return apperrors.NewUpstreamError("reassign vehicle", err)
	}

	// Both the old and the new sponsor's vehicle lists are stale now.
	r.invalidateSponsorVehicles(ctx, vehicle.SponsorID)
	r.invalidateSponsorVehicles(ctx, sponsorID)

	return nil
}

func (r *vehicleRepository) UpdateAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	return r.Update(ctx, id, map[string]interface{}{"is_available": available})
}

// NextVehicleID allocates the next numeric id for a category from the
// counters collection. The legacy id space is per category, which is why
// every booking join uses the (id, category) pair.
func (r *vehicleRepository) NextVehicleID(ctx context.Context, category models.VehicleCategory) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": fmt.Sprintf("vehicle_id:%s", category)},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, apperrors.NewUpstreamError("allocate vehicle id", err)
	}

	return counter.Seq, nil
}

func (r *vehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"name", "model", "registration_number"})
		if len(searchFilter) > 0 {
			filter = searchFilter
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("count vehicles", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.NewUpstreamError("list vehicles", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, apperrors.NewUpstreamError("decode vehicle", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewUpstreamError("count vehicles", err)
	}
	return count, nil
}

func (r *vehicleRepository) invalidateSponsorVehicles(ctx context.Context, sponsorID primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, sponsorVehiclesCacheKey(sponsorID.Hex()))
	}
}

func sponsorVehiclesCacheKey(sponsorID string) string {
	return fmt.Sprintf(utils.CacheKeySponsorVehicles, sponsorID)
}
