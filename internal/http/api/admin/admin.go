// Package admin registers the admin console API routes.
package admin

import (
	"github.com/agencydesk/agencydesk/internal/config"
	apphttp "github.com/agencydesk/agencydesk/internal/http"
	"github.com/agencydesk/agencydesk/internal/http/api/admin/handlers"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers admin-only routes. All routes require an
// authenticated user whose admin flag is set.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	if r == nil || db == nil {
		return
	}

	users := store.NewUserStore(db)

	group := r.Group("/v0/admin")
	group.Use(apphttp.UserAuthMiddleware(users, cfg.JWT))
	group.Use(apphttp.AdminRequired())

	statsHandler := handlers.NewStatsHandler(db, cfg.Quota.DailyLimit)
	group.GET("/stats", statsHandler.Get)

	userUsageHandler := handlers.NewUserUsageHandler(db)
	group.GET("/user-usage", userUsageHandler.List)
}
