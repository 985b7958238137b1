package handlers

import (
	"sponsorhub/internal/models"
	"sponsorhub/internal/services"
	"sponsorhub/internal/utils"
	"sponsorhub/internal/validators"
	"sponsorhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	earningsService services.EarningsService
	audit           *logger.AuditLogger
}

func NewWithdrawalHandler(earningsService services.EarningsService, audit *logger.AuditLogger) *WithdrawalHandler {
	return &WithdrawalHandler{
		earningsService: earningsService,
		audit:           audit,
	}
}

func (h *WithdrawalHandler) auditWithdrawal(withdrawal *models.WithdrawalRequest) {
	if h.audit == nil {
		return
	}
	h.audit.LogWithdrawalAudit(withdrawal.ID, withdrawal.Amount, utils.DefaultCurrency,
		string(withdrawal.Method), string(withdrawal.Status))
}

type createWithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreateWithdrawal files a withdrawal request against the available balance
func (h *WithdrawalHandler) CreateWithdrawal(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request createWithdrawalRequest
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

	withdrawal, err := h.earningsService.CreateWithdrawal(c.Request.Context(), sponsorID, request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Withdrawal request created successfully", withdrawal)
}

// ListWithdrawals returns the sponsor's withdrawal history, newest first
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		return
	}

	withdrawals, err := h.earningsService.ListSponsorWithdrawals(c.Request.Context(), sponsorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Withdrawals retrieved successfully", withdrawals, &utils.Meta{
		Count: len(withdrawals),
	})
}

// ListWithdrawalQueue returns withdrawals filtered by status. Admin only.
func (h *WithdrawalHandler) ListWithdrawalQueue(c *gin.Context) {
	status := models.WithdrawalStatus(c.DefaultQuery("status", string(models.WithdrawalStatusPending)))
	switch status {
	case models.WithdrawalStatusPending, models.WithdrawalStatusApproved,
		models.WithdrawalStatusCompleted, models.WithdrawalStatusRejected:
	default:
		utils.BadRequestResponse(c, "Invalid status filter")
		return
	}

	params := utils.GetPaginationParams(c)

	withdrawals, total, err := h.earningsService.ListWithdrawalsByStatus(c.Request.Context(), status, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Withdrawals retrieved successfully", withdrawals, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ApproveWithdrawal moves a pending withdrawal to approved. Admin only.
func (h *WithdrawalHandler) ApproveWithdrawal(c *gin.Context) {
	withdrawalID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	withdrawal, err := h.earningsService.ApproveWithdrawal(c.Request.Context(), withdrawalID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.auditWithdrawal(withdrawal)
	utils.SuccessResponse(c, "Withdrawal approved successfully", withdrawal)
}

type completeWithdrawalRequest struct {
	Reference string `json:"reference" validate:"omitempty,max=100"`
}

// CompleteWithdrawal records the payout as done. Admin only.
func (h *WithdrawalHandler) CompleteWithdrawal(c *gin.Context) {
	withdrawalID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var request completeWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.BadRequestResponse(c, "Invalid request: "+err.Error())
			return
		}
	}

	withdrawal, err := h.earningsService.CompleteWithdrawal(c.Request.Context(), withdrawalID, request.Reference)
	if err != nil {
		respondError(c, err)
		return
	}

	h.auditWithdrawal(withdrawal)
	utils.SuccessResponse(c, "Withdrawal completed successfully", withdrawal)
}

// RejectWithdrawal moves a pending withdrawal to rejected. Admin only.
func (h *WithdrawalHandler) RejectWithdrawal(c *gin.Context) {
	withdrawalID, ok := pathObjectID(c, "id")
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

	withdrawal, err := h.earningsService.RejectWithdrawal(c.Request.Context(), withdrawalID, request.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.auditWithdrawal(withdrawal)
	utils.SuccessResponse(c, "Withdrawal rejected", withdrawal)
}
