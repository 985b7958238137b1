package handlers

import (
	"sponsorhub/internal/utils"
	"sponsorhub/internal/validators"

	"github.com/gin-gonic/gin"
)

// AuthHandler covers token lifecycle only. Credential issuance lives in the
// identity service; this surface just rotates pairs it already trusts.
type AuthHandler struct {
	jwtSecret string
}

func NewAuthHandler(jwtSecret string) *AuthHandler {
	return &AuthHandler{
		jwtSecret: jwtSecret,
	}
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request refreshTokenRequest
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

	pair, err := utils.RefreshAccessToken(request.RefreshToken, h.jwtSecret)
	if err != nil {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, "Token refreshed successfully", pair)
}
