package routes

import (
	"sponsorhub/internal/handlers"
	"sponsorhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes wires the review queues and platform reporting.
func SetupAdminRoutes(
	router *gin.Engine,
	vehicleHandler *handlers.VehicleHandler,
	withdrawalHandler *handlers.WithdrawalHandler,
	adminHandler *handlers.AdminHandler,
	jwtSecret string,
) {
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/vehicle-requests", vehicleHandler.ListRequests)
		admin.POST("/vehicle-requests/:id/approve", vehicleHandler.ApproveRequest)
		admin.POST("/vehicle-requests/:id/reject", vehicleHandler.RejectRequest)

		admin.GET("/vehicles", vehicleHandler.ListVehicles)
		admin.POST("/vehicles/:id/reassign", vehicleHandler.ReassignVehicle)

		admin.GET("/withdrawals", withdrawalHandler.ListWithdrawalQueue)
		admin.POST("/withdrawals/:id/approve", withdrawalHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/complete", withdrawalHandler.CompleteWithdrawal)
		admin.POST("/withdrawals/:id/reject", withdrawalHandler.RejectWithdrawal)

		admin.GET("/report", adminHandler.GetPlatformReport)
		admin.GET("/sponsors/:id/report", adminHandler.GetSponsorReport)
	}
}
