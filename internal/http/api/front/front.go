// Package front registers the customer-facing storefront routes.
package front

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/config"
	"github.com/kedaikita/kedaikita-server/internal/http/api/front/handlers"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/security"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated storefront routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, ledger *loyalty.Ledger, jwtCfg config.JWTConfig) {
	if r == nil || db == nil {
		return
	}

	front := r.Group("/v0/front")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	front.POST("/register", authHandler.Register)
	front.POST("/login", authHandler.Login)
	front.GET("/config", handlers.GetPublicConfig)

	catalogHandler := handlers.NewCatalogHandler(db)
	front.GET("/menu", catalogHandler.Menu)
	front.GET("/promotions", catalogHandler.Promotions)

	eventHandler := handlers.NewEventHandler(db, ledger)
	front.GET("/events", eventHandler.List)

	authed := front.Group("")
	authed.Use(memberAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db, ledger)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile/password", profileHandler.ChangePassword)

	orderHandler := handlers.NewOrderHandler(db, ledger)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)

	authed.POST("/events/:id/register", eventHandler.Register)

	reservationHandler := handlers.NewReservationHandler(db)
	authed.POST("/reservations", reservationHandler.Create)
	authed.GET("/reservations", reservationHandler.List)

	loyaltyHandler := handlers.NewLoyaltyHandler(ledger)
	authed.GET("/loyalty/points", loyaltyHandler.Points)
	authed.GET("/loyalty/history", loyaltyHandler.History)
	authed.GET("/loyalty/redeemed-vouchers", loyaltyHandler.RedeemedVouchers)
	authed.GET("/loyalty/vouchers", loyaltyHandler.AvailableVouchers)
	authed.POST("/loyalty/vouchers/:id/redeem", loyaltyHandler.Redeem)
}

// memberAuthMiddleware validates member JWTs and loads the member into context.
func memberAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, errParse := security.ParseMemberToken(jwtCfg.Secret, tokenString)
		if errParse != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			if errors.Is(errParse, security.ErrExpiredToken) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		var member models.Member
		if errFind := db.WithContext(c.Request.Context()).First(&member, claims.MemberID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown member"})
			return
		}
		if !member.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		c.Set("memberID", member.ID)
		c.Set("memberName", member.Name)
		c.Next()
	}
}
