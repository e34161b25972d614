// Package front registers the user-facing API routes.
package front

import (
	"github.com/agencydesk/agencydesk/internal/cache"
	"github.com/agencydesk/agencydesk/internal/config"
	apphttp "github.com/agencydesk/agencydesk/internal/http"
	"github.com/agencydesk/agencydesk/internal/http/api/front/handlers"
	"github.com/agencydesk/agencydesk/internal/quota"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated front-end routes.
// redisClient may be nil; the contact count cache then degrades to misses.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, redisClient *redis.Client) {
	if r == nil || db == nil {
		return
	}

	users := store.NewUserStore(db)
	contacts := store.NewContactStore(db)
	agencies := store.NewAgencyStore(db)
	ledger := store.NewLedgerStore(db)
	counts := cache.NewContactCount(redisClient)
	policy := quota.NewPolicy(contacts, ledger, counts, cfg.Quota.DailyLimit, cfg.Quota.PageSize)

	front := r.Group("/v0/front")

	authHandler := handlers.NewAuthHandler(db, cfg.JWT)
	front.POST("/register", authHandler.Register)
	front.POST("/login", authHandler.Login)

	authed := front.Group("")
	authed.Use(apphttp.UserAuthMiddleware(users, cfg.JWT))

	contactsHandler := handlers.NewContactsHandler(policy)
	authed.GET("/contacts", contactsHandler.List)

	agenciesHandler := handlers.NewAgenciesHandler(agencies, cfg.Quota.PageSize)
	authed.GET("/agencies", agenciesHandler.List)

	usageHandler := handlers.NewUsageHandler(ledger, cfg.Quota.DailyLimit)
	authed.GET("/usage/daily", usageHandler.Daily)

	profileHandler := handlers.NewProfileHandler(ledger, cfg.Quota.DailyLimit)
	authed.GET("/profile", profileHandler.Get)

	dashboardHandler := handlers.NewDashboardHandler(agencies, contacts, ledger)
	authed.GET("/dashboard/stats", dashboardHandler.Stats)
}
