package handlers

import (
	"errors"
	"net/http"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user's id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	id, ok := value.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return id, true
}

func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+param)
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseTimeWindow reads optional from/to query params as RFC3339 timestamps.
// The window is half-open: from is inclusive, to is exclusive.
func parseTimeWindow(c *gin.Context) (models.TimeWindow, bool) {
	var window models.TimeWindow

	if raw := c.Query("from"); raw != "" {
		t, err := utils.ParseTimeISO(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid from timestamp, expected RFC3339")
			return window, false
		}
		window.From = &t
	}

	if raw := c.Query("to"); raw != "" {
		t, err := utils.ParseTimeISO(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid to timestamp, expected RFC3339")
			return window, false
		}
		window.To = &t
	}

	if window.From != nil && window.To != nil && !window.From.Before(*window.To) {
		utils.BadRequestResponse(c, "Window start must be before window end")
		return window, false
	}

	return window, true
}

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			validationErr.Message, map[string]string{validationErr.Field: validationErr.Message})
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.NotFoundResponse(c, notFoundErr.Resource)
		return
	}

	if apperrors.IsUpstream(err) {
		utils.UpstreamErrorResponse(c, utils.ErrUpstreamFailed)
		return
	}

	utils.InternalServerErrorResponse(c)
}
