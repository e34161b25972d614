package handlers

import (
	"net/http"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserUsageHandler lists per-user quota consumption for the admin console.
type UserUsageHandler struct {
	db *gorm.DB
}

// NewUserUsageHandler constructs a UserUsageHandler.
func NewUserUsageHandler(db *gorm.DB) *UserUsageHandler {
	return &UserUsageHandler{db: db}
}

// userUsageRow is the scan target for the user/usage join.
type userUsageRow struct {
	ID                  uint64 `json:"id"`
	Email               string `json:"email"`
	IsAdmin             bool   `json:"isAdmin"`
	ContactsViewedToday int    `json:"contactsViewedToday"`
}

// List returns every user with today's viewed-contact count. Users without
// a ledger entry today report zero.
func (h *UserUsageHandler) List(c *gin.Context) {
	today := models.DateKey(time.Now())

	var rows []userUsageRow
	if errScan := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Select("users.id AS id, users.email AS email, users.is_admin AS is_admin, COALESCE(daily_usage.viewed_count, 0) AS contacts_viewed_today").
		Joins("LEFT JOIN daily_usage ON daily_usage.user_id = users.id AND daily_usage.date = ?", today).
		Order("users.id ASC").
		Scan(&rows).Error; errScan != nil {
		log.WithError(errScan).Error("list user usage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch user usage failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": rows})
}
