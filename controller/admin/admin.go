package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"disasterreport/controller"
	"disasterreport/dto"
	"disasterreport/repository"
	"disasterreport/services"
)

// AdminController registers the report status route behind the given guards (may be none).
func AdminController(router *gin.Engine, svc *services.ReportService, logger *slog.Logger, guards ...gin.HandlerFunc) {
	routes := router.Group("/admin", guards...)
	{
		routes.PUT("/report/:report_id/status", func(c *gin.Context) {
			UpdateReportStatus(c, svc, logger)
		})
	}
}

func UpdateReportStatus(c *gin.Context, svc *services.ReportService, logger *slog.Logger) {
	param := c.Param("report_id")
	reportID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}
	// Stored ids are canonical decimals, so "01" or "+1" name no row.
	if strconv.FormatInt(reportID, 10) != param {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	report, err := svc.UpdateStatus(c.Request.Context(), reportID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		controller.InternalError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report status updated successfully",
		"report":  report,
	})
}
