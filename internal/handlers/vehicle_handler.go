package handlers

import (
	"strconv"

	"sponsorhub/internal/models"
	"sponsorhub/internal/services"
	"sponsorhub/internal/utils"
	"sponsorhub/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

type submitVehicleRequest struct {
	Category           string  `form:"category" validate:"required,vehicle_category"`
	Name               string  `form:"name" validate:"required,min=2,max=100"`
	Model              string  `form:"model" validate:"omitempty,max=100"`
	RegistrationNumber string  `form:"registration_number" validate:"omitempty,registration_number"`
	HourlyRate         float64 `form:"hourly_rate" validate:"required,gt=0"`
}

// SubmitRequest files a new vehicle listing request with an optional image
func (h *VehicleHandler) SubmitRequest(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request submitVehicleRequest
	if err := c.ShouldBind(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			details[e.Field] = e.Message
		}
		utils.ValidationErrorResponse(c, details)
		return
	}

	input := &services.SubmitVehicleInput{
		Category:           models.VehicleCategory(request.Category),
		Name:               request.Name,
		Model:              request.Model,
		RegistrationNumber: request.RegistrationNumber,
		HourlyRate:         request.HourlyRate,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		if fileHeader.Size > utils.MaxImageSize {
			utils.BadRequestResponse(c, "Image exceeds maximum size of 5MB")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Could not read uploaded image")
			return
		}
		defer file.Close()

		input.Image = file
		input.ImageContentType = fileHeader.Header.Get("Content-Type")
		input.ImageSize = fileHeader.Size
	}

	vehicleRequest, err := h.vehicleService.SubmitRequest(c.Request.Context(), sponsorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle request submitted successfully", vehicleRequest)
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// SetAvailability toggles whether a live vehicle can take new bookings
func (h *VehicleHandler) SetAvailability(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request availabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.Available == nil {
		utils.BadRequestResponse(c, "Field available is required")
		return
	}

	if err := h.vehicleService.SetAvailability(c.Request.Context(), sponsorID, vehicleID, *request.Available); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle availability updated successfully", nil)
}

// ListVehicles returns the live fleet, paginated. Admin only.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ListRequests returns the review queue filtered by status. Admin only.
func (h *VehicleHandler) ListRequests(c *gin.Context) {
	status := models.RequestStatus(c.DefaultQuery("status", string(models.RequestStatusPending)))
	switch status {
	case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		utils.BadRequestResponse(c, "Invalid status filter")
		return
	}

	params := utils.GetPaginationParams(c)

	requests, total, err := h.vehicleService.ListRequests(c.Request.Context(), status, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicle requests retrieved successfully", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ApproveRequest approves a pending vehicle request and creates the live row
func (h *VehicleHandler) ApproveRequest(c *gin.Context) {
	requestID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.ApproveRequest(c.Request.Context(), requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle request approved, vehicle #"+strconv.FormatInt(vehicle.VehicleID, 10)+" is live", vehicle)
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// RejectRequest rejects a pending vehicle request with a reason
func (h *VehicleHandler) RejectRequest(c *gin.Context) {
	requestID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request rejectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			details[e.Field] = e.Message
		}
		utils.ValidationErrorResponse(c, details)
		return
	}

	vehicleRequest, err := h.vehicleService.RejectRequest(c.Request.Context(), requestID, request.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle request rejected", vehicleRequest)
}

type reassignRequest struct {
	SponsorID string `json:"sponsor_id" validate:"required,object_id"`
}

// ReassignVehicle moves a live vehicle to a different sponsor
func (h *VehicleHandler) ReassignVehicle(c *gin.Context) {
	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request reassignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			details[e.Field] = e.Message
		}
		utils.ValidationErrorResponse(c, details)
		return
	}

	sponsorID, err := primitive.ObjectIDFromHex(request.SponsorID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sponsor_id")
		return
	}

	vehicle, err := h.vehicleService.ReassignVehicle(c.Request.Context(), vehicleID, sponsorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle reassigned successfully", vehicle)
}
