package services

import (
	"sponsorhub/internal/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseObjectID(hex, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError(field, "invalid id format")
	}
	return id, nil
}
