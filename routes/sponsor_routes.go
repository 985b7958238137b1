package routes

import (
	"sponsorhub/internal/handlers"
	"sponsorhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSponsorRoutes wires the sponsor-facing portal surface.
func SetupSponsorRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	sponsorHandler *handlers.SponsorHandler,
	vehicleHandler *handlers.VehicleHandler,
	withdrawalHandler *handlers.WithdrawalHandler,
	jwtSecret string,
) {
	api := router.Group("/api/v1")

	api.POST("/auth/refresh", authHandler.RefreshToken)

	// Registration is the only other unauthenticated endpoint.
	api.POST("/sponsors", sponsorHandler.Register)

	sponsors := api.Group("/sponsors")
	sponsors.Use(middleware.AuthRequired(jwtSecret), middleware.SponsorRequired())
	{
		sponsors.GET("/me", sponsorHandler.GetProfile)
		sponsors.PATCH("/me", sponsorHandler.UpdateProfile)
		sponsors.PUT("/me/payout-details", sponsorHandler.UpdatePayoutDetails)
		sponsors.PUT("/me/fcm-token", sponsorHandler.UpdateFCMToken)

		sponsors.GET("/me/vehicles", sponsorHandler.ListVehicles)
		sponsors.POST("/me/vehicles", vehicleHandler.SubmitRequest)
		sponsors.PATCH("/me/vehicles/:id/availability", vehicleHandler.SetAvailability)

		sponsors.GET("/me/bookings", sponsorHandler.ListBookings)
		sponsors.GET("/me/dashboard", sponsorHandler.Dashboard)

		sponsors.GET("/me/withdrawals", withdrawalHandler.ListWithdrawals)
		sponsors.POST("/me/withdrawals", withdrawalHandler.CreateWithdrawal)
	}
}
