package handlers

import (
	"sponsorhub/internal/models"
	"sponsorhub/internal/services"
	"sponsorhub/internal/utils"
	"sponsorhub/internal/validators"

	"github.com/gin-gonic/gin"
)

type SponsorHandler struct {
	sponsorService  services.SponsorService
	earningsService services.EarningsService
}

func NewSponsorHandler(sponsorService services.SponsorService, earningsService services.EarningsService) *SponsorHandler {
	return &SponsorHandler{
		sponsorService:  sponsorService,
		earningsService: earningsService,
	}
}

type registerSponsorRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,phone_number"`
}

// Register creates a new sponsor account
func (h *SponsorHandler) Register(c *gin.Context) {
	var request registerSponsorRequest
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

	sponsor, err := h.sponsorService.Register(c.Request.Context(), &services.RegisterSponsorInput{
		Name:  request.Name,
		Email: request.Email,
		Phone: request.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Sponsor registered successfully", sponsor)
}

// GetProfile returns the authenticated sponsor's profile
func (h *SponsorHandler) GetProfile(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	sponsor, err := h.sponsorService.GetProfile(c.Request.Context(), sponsorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", sponsor)
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone string `json:"phone" validate:"omitempty,phone_number"`
}

// UpdateProfile updates name and phone on the sponsor profile
func (h *SponsorHandler) UpdateProfile(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request updateProfileRequest
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

	updates := map[string]interface{}{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}

	sponsor, err := h.sponsorService.UpdateProfile(c.Request.Context(), sponsorID, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", sponsor)
}

type payoutDetailsRequest struct {
	AccountNumber string `json:"account_number" validate:"omitempty,min=6,max=20"`
	IFSCCode      string `json:"ifsc_code" validate:"omitempty,ifsc_code"`
	HolderName    string `json:"holder_name" validate:"omitempty,min=2,max=100"`
	UPIID         string `json:"upi_id" validate:"omitempty,upi_id"`
}

// UpdatePayoutDetails stores the sponsor's payout destination
func (h *SponsorHandler) UpdatePayoutDetails(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request payoutDetailsRequest
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

	input := &services.PayoutDetailsInput{UPIID: request.UPIID}
	if request.AccountNumber != "" || request.IFSCCode != "" || request.HolderName != "" {
		input.Bank = &models.BankDetails{
			AccountNumber: request.AccountNumber,
			IFSCCode:      request.IFSCCode,
			HolderName:    request.HolderName,
		}
	}

	sponsor, err := h.sponsorService.UpdatePayoutDetails(c.Request.Context(), sponsorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payout details updated successfully", sponsor)
}

type fcmTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// UpdateFCMToken stores the device token for push notifications
func (h *SponsorHandler) UpdateFCMToken(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request fcmTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.sponsorService.UpdateFCMToken(c.Request.Context(), sponsorID, request.Token); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "FCM token updated successfully", nil)
}

// ListVehicles returns the sponsor's unified vehicle list: live vehicles plus
// pending and rejected submissions
func (h *SponsorHandler) ListVehicles(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.sponsorService.ListVehicles(c.Request.Context(), sponsorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", entries, &utils.Meta{
		Count: len(entries),
	})
}

// ListBookings returns every booking attributed to the sponsor's vehicles
func (h *SponsorHandler) ListBookings(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.sponsorService.ListBookings(c.Request.Context(), sponsorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Count: len(bookings),
	})
}

// Dashboard returns the sponsor's earnings report for an optional time window
func (h *SponsorHandler) Dashboard(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	window, ok := parseTimeWindow(c)
	if !ok {
		return
	}

	report, err := h.sponsorService.Dashboard(c.Request.Context(), sponsorID, window)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", report)
}
