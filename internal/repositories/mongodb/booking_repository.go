package mongodb

import (
	"context"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepository) GetByVehicleIDs(ctx context.Context, vehicleIDs []int64) ([]*models.Booking, error) {
	if len(vehicleIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx,
		bson.M{"vehicle_id": bson.M{"$in": vehicleIDs}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, apperrors.NewUpstreamError("find bookings by vehicle ids", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, apperrors.NewUpstreamError("decode booking", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) GetTotalCount(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewUpstreamError("count bookings", err)
	}
	return count, nil
}
