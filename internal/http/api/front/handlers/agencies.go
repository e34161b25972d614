package handlers

import (
	"net/http"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AgenciesHandler serves the agency directory. Agencies carry no quota.
type AgenciesHandler struct {
	agencies *store.AgencyStore
	pageSize int
}

// NewAgenciesHandler constructs an AgenciesHandler.
func NewAgenciesHandler(agencies *store.AgencyStore, pageSize int) *AgenciesHandler {
	return &AgenciesHandler{agencies: agencies, pageSize: pageSize}
}

// agencyView is the wire representation of an agency record.
type agencyView struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	County    string    `json:"county"`
	Type      string    `json:"type"`
	Website   string    `json:"website"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toAgencyViews(rows []models.Agency) []agencyView {
	views := make([]agencyView, 0, len(rows))
	for _, row := range rows {
		views = append(views, agencyView{
			ID:        row.ID,
			Name:      row.Name,
			State:     row.State,
			County:    row.County,
			Type:      row.Type,
			Website:   row.Website,
			Phone:     row.Phone,
			CreatedAt: row.CreatedAt,
		})
	}
	return views
}

// List serves one page of agencies with optional search over name, state
// and county.
func (h *AgenciesHandler) List(c *gin.Context) {
	page := pageParam(c)
	search := searchParam(c)
	offset := (page - 1) * h.pageSize

	rows, total, errList := h.agencies.List(c.Request.Context(), offset, h.pageSize, search)
	if errList != nil {
		log.WithError(errList).Error("list agencies failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch agencies failed"})
		return
	}

	totalPages := int((total + int64(h.pageSize) - 1) / int64(h.pageSize))
	c.JSON(http.StatusOK, gin.H{
		"agencies":    toAgencyViews(rows),
		"totalPages":  totalPages,
		"currentPage": page,
		"totalCount":  total,
	})
}
