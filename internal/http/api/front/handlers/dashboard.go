package handlers

import (
	"net/http"

	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DashboardHandler serves the user dashboard summary.
type DashboardHandler struct {
	agencies *store.AgencyStore
	contacts *store.ContactStore
	ledger   *store.LedgerStore
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(agencies *store.AgencyStore, contacts *store.ContactStore, ledger *store.LedgerStore) *DashboardHandler {
	return &DashboardHandler{agencies: agencies, contacts: contacts, ledger: ledger}
}

// recentContactView exposes only fields safe to show without consuming
// quota: no email or phone.
type recentContactView struct {
	ID         uint64 `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// Stats returns catalog totals, today's usage and recent records.
func (h *DashboardHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	ctx := c.Request.Context()

	agencyCount, errAgencies := h.agencies.Count(ctx)
	if errAgencies != nil {
		log.WithError(errAgencies).Error("count agencies failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch dashboard failed"})
		return
	}
	contactCount, errContacts := h.contacts.Count(ctx, "")
	if errContacts != nil {
		log.WithError(errContacts).Error("count contacts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch dashboard failed"})
		return
	}

	viewedToday := 0
	if !user.IsAdmin {
		day, errGet := h.ledger.GetToday(ctx, user.ID)
		if errGet != nil {
			log.WithError(errGet).Error("load daily usage failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch dashboard failed"})
			return
		}
		viewedToday = day.ViewedCount
	}

	recentAgencies, errRecentAgencies := h.agencies.Recent(ctx, 5)
	if errRecentAgencies != nil {
		log.WithError(errRecentAgencies).Error("recent agencies failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch dashboard failed"})
		return
	}
	recentContacts, errRecentContacts := h.contacts.Recent(ctx, 5)
	if errRecentContacts != nil {
		log.WithError(errRecentContacts).Error("recent contacts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch dashboard failed"})
		return
	}

	contactViews := make([]recentContactView, 0, len(recentContacts))
	for _, row := range recentContacts {
		contactViews = append(contactViews, recentContactView{
			ID:         row.ID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Title:      row.Title,
			Department: row.Department,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"agencies":            agencyCount,
		"contacts":            contactCount,
		"contactsViewedToday": viewedToday,
		"recentAgencies":      toAgencyViews(recentAgencies),
		"recentContacts":      contactViews,
	})
}
