package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/quota"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ContactsHandler serves the quota-gated contact directory.
type ContactsHandler struct {
	policy *quota.Policy
}

// NewContactsHandler constructs a ContactsHandler.
func NewContactsHandler(policy *quota.Policy) *ContactsHandler {
	return &ContactsHandler{policy: policy}
}

// contactView is the wire representation of a contact record.
type contactView struct {
	ID         uint64    `json:"id"`
	AgencyID   *uint64   `json:"agency_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Title      string    `json:"title"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

func toContactViews(rows []models.Contact) []contactView {
	views := make([]contactView, 0, len(rows))
	for _, row := range rows {
		views = append(views, contactView{
			ID:         row.ID,
			AgencyID:   row.AgencyID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Title:      row.Title,
			Department: row.Department,
			Email:      row.Email,
			Phone:      row.Phone,
			CreatedAt:  row.CreatedAt,
		})
	}
	return views
}

// List serves one page of contacts under the caller's quota state.
func (h *ContactsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page := pageParam(c)
	search := searchParam(c)

	result, errResolve := h.policy.ResolvePage(c.Request.Context(), user, page, search)
	if errResolve != nil {
		if errors.Is(errResolve, quota.ErrExceededEmpty) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"contacts":    []contactView{},
				"totalPages":  0,
				"currentPage": result.CurrentPage,
				"usage":       result.Usage,
				"error":       "daily limit exceeded",
			})
			return
		}
		log.WithError(errResolve).Error("resolve contact page failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch contacts failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts":    toContactViews(result.Contacts),
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"usage":       result.Usage,
	})
}
