package handlers

import (
	"sponsorhub/internal/services"
	"sponsorhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reportService services.ReportService
}

func NewAdminHandler(reportService services.ReportService) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
	}
}

// GetPlatformReport returns the platform-wide revenue rollup across all
// sponsors for an optional time window
func (h *AdminHandler) GetPlatformReport(c *gin.Context) {
	window, ok := parseTimeWindow(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetPlatformReport(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Platform report generated successfully", report)
}

// GetSponsorReport returns one sponsor's earnings report, as the sponsor
// would see it on their own dashboard
func (h *AdminHandler) GetSponsorReport(c *gin.Context) {
	window, ok := parseTimeWindow(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetSponsorReport(c.Request.Context(), c.Param("id"), window)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Sponsor report generated successfully", report)
}
