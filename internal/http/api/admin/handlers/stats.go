package handlers

import (
	"net/http"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsHandler serves aggregate platform statistics for the admin console.
type StatsHandler struct {
	db         *gorm.DB
	dailyLimit int
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(db *gorm.DB, dailyLimit int) *StatsHandler {
	return &StatsHandler{db: db, dailyLimit: dailyLimit}
}

// Get returns totals, today's average contact views per user and the number
// of users at or over the daily limit.
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var totalUsers, totalAgencies, totalContacts int64
	if errCount := h.db.WithContext(ctx).Model(&models.User{}).Count(&totalUsers).Error; errCount != nil {
		log.WithError(errCount).Error("count users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch stats failed"})
		return
	}
	if errCount := h.db.WithContext(ctx).Model(&models.Agency{}).Count(&totalAgencies).Error; errCount != nil {
		log.WithError(errCount).Error("count agencies failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch stats failed"})
		return
	}
	if errCount := h.db.WithContext(ctx).Model(&models.Contact{}).Count(&totalContacts).Error; errCount != nil {
		log.WithError(errCount).Error("count contacts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch stats failed"})
		return
	}

	today := models.DateKey(time.Now())

	var viewedTotal int64
	if errScan := h.db.WithContext(ctx).Model(&models.DailyUsage{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(viewed_count), 0)").
		Scan(&viewedTotal).Error; errScan != nil {
		log.WithError(errScan).Error("sum daily usage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch stats failed"})
		return
	}

	var exceededUsers int64
	if errCount := h.db.WithContext(ctx).Model(&models.DailyUsage{}).
		Where("date = ? AND viewed_count >= ?", today, h.dailyLimit).
		Count(&exceededUsers).Error; errCount != nil {
		log.WithError(errCount).Error("count exceeded users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch stats failed"})
		return
	}

	averageViewedToday := 0.0
	if totalUsers > 0 {
		averageViewedToday = float64(viewedTotal) / float64(totalUsers)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":                 totalUsers,
		"totalAgencies":              totalAgencies,
		"totalContacts":              totalContacts,
		"averageContactsViewedToday": averageViewedToday,
		"usersWithLimitExceeded":     exceededUsers,
	})
}
