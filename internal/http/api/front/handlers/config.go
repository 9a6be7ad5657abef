package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/settings"
)

// GetPublicConfig returns the public store profile for the storefront shell.
func GetPublicConfig(c *gin.Context) {
	profile := settings.Profile()
	c.JSON(http.StatusOK, gin.H{
		"name":          profile.Name,
		"tagline":       profile.Tagline,
		"address":       profile.Address,
		"phone":         profile.Phone,
		"opening_hours": profile.OpeningHours,
		"currency":      profile.Currency,
	})
}
