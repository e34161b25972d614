package handlers

import (
	"net/http"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ProfileHandler reports account and usage details for the caller.
type ProfileHandler struct {
	ledger     *store.LedgerStore
	dailyLimit int
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(ledger *store.LedgerStore, dailyLimit int) *ProfileHandler {
	return &ProfileHandler{ledger: ledger, dailyLimit: dailyLimit}
}

// Get returns the caller's profile with today's and this month's usage.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	viewedToday := 0
	viewedThisMonth := int64(0)
	remainingToday := h.dailyLimit

	if !user.IsAdmin {
		day, errGet := h.ledger.GetToday(c.Request.Context(), user.ID)
		if errGet != nil {
			log.WithError(errGet).Error("load daily usage failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch profile failed"})
			return
		}
		viewedToday = day.ViewedCount
		remainingToday = h.dailyLimit - viewedToday
		if remainingToday < 0 {
			remainingToday = 0
		}

		now := time.Now().UTC()
		monthStart := models.DateKey(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
		sum, errSum := h.ledger.SumSince(c.Request.Context(), user.ID, monthStart)
		if errSum != nil {
			log.WithError(errSum).Error("sum monthly usage failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch profile failed"})
			return
		}
		viewedThisMonth = sum
	}

	c.JSON(http.StatusOK, gin.H{
		"email":                   user.Email,
		"isAdmin":                 user.IsAdmin,
		"contactsViewedToday":     viewedToday,
		"contactsViewedThisMonth": viewedThisMonth,
		"remainingContactsToday":  remainingToday,
	})
}
