package store

import (
	"context"
	"fmt"

	dbutil "github.com/agencydesk/agencydesk/internal/db"
	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/gorm"
)

// AgencyStore provides paginated access to the agency catalog.
type AgencyStore struct {
	db *gorm.DB
}

// NewAgencyStore constructs an AgencyStore backed by GORM.
func NewAgencyStore(db *gorm.DB) *AgencyStore {
	return &AgencyStore{db: db}
}

// List returns a page of agencies plus the total matching count, ordered by
// name with ID as the tie-breaker. Search matches name, state or county.
func (s *AgencyStore) List(ctx context.Context, offset, limit int, search string) ([]models.Agency, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Agency{})
	if search != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+search+"%")
		expr := fmt.Sprintf("%s OR %s OR %s",
			dbutil.CaseInsensitiveLikeExpr(s.db, "name"),
			dbutil.CaseInsensitiveLikeExpr(s.db, "state"),
			dbutil.CaseInsensitiveLikeExpr(s.db, "county"),
		)
		q = q.Where(expr, pattern, pattern, pattern)
	}

	var total int64
	if errCount := q.Count(&total).Error; errCount != nil {
		return nil, 0, fmt.Errorf("store: count agencies: %w", errCount)
	}

	var rows []models.Agency
	if errFind := q.
		Order("name ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; errFind != nil {
		return nil, 0, fmt.Errorf("store: list agencies: %w", errFind)
	}
	return rows, total, nil
}

// Count returns the total number of agencies.
func (s *AgencyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.Agency{}).Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("store: count agencies: %w", errCount)
	}
	return count, nil
}

// Recent returns the newest agencies.
func (s *AgencyStore) Recent(ctx context.Context, limit int) ([]models.Agency, error) {
	var rows []models.Agency
	if errFind := s.db.WithContext(ctx).Model(&models.Agency{}).
		Select("id", "name", "state", "type", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("store: recent agencies: %w", errFind)
	}
	return rows, nil
}
