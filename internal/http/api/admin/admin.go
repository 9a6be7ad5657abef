// Package admin registers the back-office management routes.
package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/config"
	"github.com/kedaikita/kedaikita-server/internal/http/api/admin/handlers"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/security"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers the admin login and management routes.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig) {
	if r == nil || db == nil {
		return
	}

	group := r.Group("/v0/admin")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	group.POST("/login", authHandler.Login)

	authed := group.Group("")
	authed.Use(adminAuthMiddleware(db, jwtCfg))

	authed.PUT("/password", authHandler.ChangePassword)

	mfaHandler := handlers.NewMFAHandler(db)
	authed.GET("/mfa/totp", mfaHandler.Status)
	authed.POST("/mfa/totp/prepare", mfaHandler.PrepareTOTP)
	authed.POST("/mfa/totp/confirm", mfaHandler.ConfirmTOTP)
	authed.POST("/mfa/totp/disable", mfaHandler.DisableTOTP)

	menuHandler := handlers.NewMenuHandler(db)
	authed.GET("/menu", menuHandler.List)
	authed.POST("/menu", menuHandler.Create)
	authed.PUT("/menu/:id", menuHandler.Update)
	authed.DELETE("/menu/:id", menuHandler.Delete)

	stockHandler := handlers.NewStockHandler(db)
	authed.GET("/stock", stockHandler.List)
	authed.POST("/stock", stockHandler.Create)
	authed.PUT("/stock/:id", stockHandler.Update)
	authed.DELETE("/stock/:id", stockHandler.Delete)

	customerHandler := handlers.NewCustomerHandler(db)
	authed.GET("/customers", customerHandler.List)
	authed.POST("/customers", customerHandler.Create)
	authed.PUT("/customers/:id", customerHandler.Update)
	authed.DELETE("/customers/:id", customerHandler.Delete)

	memberHandler := handlers.NewMemberHandler(db)
	authed.GET("/members", memberHandler.List)
	authed.GET("/members/:id", memberHandler.Get)
	authed.POST("/members/:id/toggle-active", memberHandler.ToggleActive)

	promotionHandler := handlers.NewPromotionHandler(db)
	authed.GET("/promotions", promotionHandler.List)
	authed.POST("/promotions", promotionHandler.Create)
	authed.PUT("/promotions/:id", promotionHandler.Update)
	authed.DELETE("/promotions/:id", promotionHandler.Delete)

	eventHandler := handlers.NewEventHandler(db)
	authed.GET("/events", eventHandler.List)
	authed.POST("/events", eventHandler.Create)
	authed.PUT("/events/:id", eventHandler.Update)
	authed.DELETE("/events/:id", eventHandler.Delete)
	authed.GET("/events/:id/registrations", eventHandler.Registrations)

	orderHandler := handlers.NewOrderHandler(db)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders/:id/status", orderHandler.UpdateStatus)

	saleHandler := handlers.NewSaleHandler(db)
	authed.GET("/sales", saleHandler.List)
	authed.GET("/sales/summary", saleHandler.Summary)

	reservationHandler := handlers.NewReservationHandler(db)
	authed.GET("/reservations", reservationHandler.List)
	authed.POST("/reservations/:id/status", reservationHandler.UpdateStatus)

	voucherHandler := handlers.NewVoucherHandler(db)
	authed.GET("/vouchers", voucherHandler.List)
	authed.POST("/vouchers", voucherHandler.Create)
	authed.PUT("/vouchers/:id", voucherHandler.Update)
	authed.DELETE("/vouchers/:id", voucherHandler.Delete)
	authed.GET("/vouchers/redeemed", voucherHandler.Redeemed)

	settingsHandler := handlers.NewSettingsHandler(db)
	authed.GET("/settings/profile", settingsHandler.GetProfile)
	authed.PUT("/settings/profile", settingsHandler.UpdateProfile)

	dashboardHandler := handlers.NewDashboardHandler(db)
	authed.GET("/dashboard", dashboardHandler.Overview)
}

// adminAuthMiddleware validates admin JWTs and loads the admin into context.
func adminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, errParse := security.ParseAdminToken(jwtCfg.Secret, tokenString)
		if errParse != nil {
			message := "invalid token"
			if errors.Is(errParse, security.ErrExpiredToken) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		var admin models.Admin
		if errFind := db.WithContext(c.Request.Context()).First(&admin, claims.AdminID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown admin"})
			return
		}
		if !admin.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		c.Set("adminID", admin.ID)
		c.Set("adminRole", admin.Role)
		c.Next()
	}
}
