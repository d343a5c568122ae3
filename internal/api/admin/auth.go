// Package admin implements the authenticated HTTP surface used by the event
// organizers: login, registration listing, CSV export, and dashboard stats.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/event-registration/registration-backend/internal/auth"
	"github.com/event-registration/registration-backend/internal/config"
)

// AuthHandlers serves admin session endpoints.
type AuthHandlers struct {
	cfg *config.Config
}

// NewAuthHandlers creates the admin auth handlers.
func NewAuthHandlers(cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
}

// LoginHandler handles POST /api/v1/admin/login.
//
// The deployment has a single organizer account whose bcrypt password hash is
// configured out of band (see cmd/hash). A successful login returns a Bearer
// session token for the admin routes.
func (h *AuthHandlers) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Password is required",
			})
			return
		}

		if h.cfg.Admin.PasswordHash == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Admin access is not configured",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(h.cfg.Admin.PasswordHash), []byte(req.Password),
		); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		token, err := auth.GenerateJWT("organizer", h.cfg.Admin.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to create session",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"token":      token,
			"expires_in": int(h.cfg.Admin.SessionTTL / time.Second),
		})
	}
}
