package handlers

import (
	"net/http"

	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UsageHandler reports the caller's daily quota consumption.
type UsageHandler struct {
	ledger     *store.LedgerStore
	dailyLimit int
}

// NewUsageHandler constructs a UsageHandler.
func NewUsageHandler(ledger *store.LedgerStore, dailyLimit int) *UsageHandler {
	return &UsageHandler{ledger: ledger, dailyLimit: dailyLimit}
}

// Daily returns today's usage for the caller. Admins report unlimited.
func (h *UsageHandler) Daily(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if user.IsAdmin {
		c.JSON(http.StatusOK, gin.H{
			"contactsViewedToday": 0,
			"remainingContacts":   h.dailyLimit,
			"limit":               h.dailyLimit,
			"hasExceeded":         false,
			"unlimited":           true,
		})
		return
	}

	day, errGet := h.ledger.GetToday(c.Request.Context(), user.ID)
	if errGet != nil {
		log.WithError(errGet).Error("load daily usage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch usage failed"})
		return
	}

	remaining := h.dailyLimit - day.ViewedCount
	if remaining < 0 {
		remaining = 0
	}
	c.JSON(http.StatusOK, gin.H{
		"contactsViewedToday": day.ViewedCount,
		"remainingContacts":   remaining,
		"limit":               h.dailyLimit,
		"hasExceeded":         day.ViewedCount >= h.dailyLimit,
		"unlimited":           false,
	})
}
