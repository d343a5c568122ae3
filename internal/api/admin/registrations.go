// registrations.go implements the organizer-facing listing and CSV export of
// stored registrations.
package admin

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/event-registration/registration-backend/internal/db/models"
	"github.com/event-registration/registration-backend/internal/db/repositories"
)

// RegistrationHandlers serves the admin registration endpoints.
type RegistrationHandlers struct {
	repo *repositories.RegistrationRepository
}

// NewRegistrationHandlers creates the admin registration handlers.
func NewRegistrationHandlers(repo *repositories.RegistrationRepository) *RegistrationHandlers {
	return &RegistrationHandlers{repo: repo}
}

// ListHandler handles GET /api/v1/registrations. Registrations are returned
// newest first.
func (h *RegistrationHandlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		regs, err := h.repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to load registrations",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(regs),
			"data":    regs,
		})
	}
}

// ExportHandler handles GET /api/v1/admin/registrations/export, streaming the
// full registration list as a CSV attachment for offline check-in lists.
func (h *RegistrationHandlers) ExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		regs, err := h.repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to load registrations",
			})
			return
		}

		filename := fmt.Sprintf("registrations-%s.csv", time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Status(http.StatusOK)

		w := csv.NewWriter(c.Writer)
		if err := w.Write(models.CSVHeader()); err != nil {
			return
		}
		for _, reg := range regs {
			if err := w.Write(reg.CSVRecord()); err != nil {
				return
			}
		}
		w.Flush()
	}
}
