package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"disasterreport/controller"
	"disasterreport/dto"
	"disasterreport/model"
	"disasterreport/services"
)

func ReportController(router *gin.Engine, svc *services.ReportService, uploadDir string, logger *slog.Logger) {
	routes := router.Group("/user")
	{
		routes.POST("/report/", func(c *gin.Context) {
			SubmitReport(c, svc, uploadDir, logger)
		})
		routes.GET("/reports/", func(c *gin.Context) {
			ListReports(c, svc, logger)
		})
	}
}

func uploadBase(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return base
}

// uploadName builds "<unix-millis>-<original base name>".
func uploadName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uploadBase(original))
}

// saveUpload copies src into dir under uploadName, falling back to a name with a
// short random tag when that one is taken. Existing files are never overwritten.
func saveUpload(src io.Reader, original, dir string, now time.Time) (string, error) {
	name := uploadName(original, now)
	out, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		name = fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString()[:8], uploadBase(original))
		out, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, name)
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}
	return name, nil
}

func parseCoordinate(raw string) (float64, bool) {
	v, err := model.ParseCoordinate(strings.TrimSpace(raw))
	return v, err == nil
}

func SubmitReport(c *gin.Context, svc *services.ReportService, uploadDir string, logger *slog.Logger) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	var form dto.ReportForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	lat, ok := parseCoordinate(form.Latitude)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lng, ok := parseCoordinate(form.Longitude)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image file"})
		return
	}
	filename, err := saveUpload(src, file.Filename, uploadDir, time.Now())
	src.Close()
	if err != nil {
		controller.InternalError(c, logger, fmt.Errorf("save upload: %w", err))
		return
	}
	dst := filepath.Join(uploadDir, filename)

	report, err := svc.Submit(c.Request.Context(), services.NewReport{
		ImageFilename: filename,
		ImagePath:     dst,
		Latitude:      lat,
		Longitude:     lng,
		Location:      form.Location,
		Description:   form.Description,
	})
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			logger.Warn("remove orphaned upload failed", "file", dst, "error", rmErr)
		}
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		controller.InternalError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func ListReports(c *gin.Context, svc *services.ReportService, logger *slog.Logger) {
	reports, err := svc.List(c.Request.Context())
	if err != nil {
		controller.InternalError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
