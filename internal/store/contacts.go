package store

import (
	"context"
	"fmt"

	dbutil "github.com/agencydesk/agencydesk/internal/db"
	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/gorm"
)

// ContactStore provides counted, filtered, ordered access to the contact
// catalog. All range queries order by the contact ID, the stable sort key.
type ContactStore struct {
	db *gorm.DB
}

// NewContactStore constructs a ContactStore backed by GORM.
func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// searchScope restricts a query to contacts matching the search term on
// name, title or email, case-insensitively on both dialects.
func (s *ContactStore) searchScope(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	pattern := dbutil.NormalizeLikePattern(s.db, "%"+search+"%")
	expr := fmt.Sprintf("%s OR %s OR %s OR %s",
		dbutil.CaseInsensitiveLikeExpr(s.db, "first_name"),
		dbutil.CaseInsensitiveLikeExpr(s.db, "last_name"),
		dbutil.CaseInsensitiveLikeExpr(s.db, "email"),
		dbutil.CaseInsensitiveLikeExpr(s.db, "title"),
	)
	return q.Where(expr, pattern, pattern, pattern, pattern)
}

// Count returns the number of contacts matching the optional search term.
func (s *ContactStore) Count(ctx context.Context, search string) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Contact{})
	if errCount := s.searchScope(q, search).Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("store: count contacts: %w", errCount)
	}
	return count, nil
}

// CountByIDs returns the number of contacts within the given ID set matching
// the optional search term.
func (s *ContactStore) CountByIDs(ctx context.Context, ids []uint64, search string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Contact{}).Where("id IN ?", ids)
	if errCount := s.searchScope(q, search).Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("store: count contacts by ids: %w", errCount)
	}
	return count, nil
}

// RangeByStableID returns contacts ordered by ID starting at offset.
func (s *ContactStore) RangeByStableID(ctx context.Context, offset, limit int, search string) ([]models.Contact, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rows []models.Contact
	q := s.db.WithContext(ctx).Model(&models.Contact{})
	if errFind := s.searchScope(q, search).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("store: range contacts: %w", errFind)
	}
	return rows, nil
}

// RangeByIDs returns contacts restricted to the given ID set, ordered by ID,
// paginated by offset and limit. IDs referencing deleted contacts simply
// produce no rows.
func (s *ContactStore) RangeByIDs(ctx context.Context, ids []uint64, offset, limit int, search string) ([]models.Contact, error) {
	if len(ids) == 0 || limit <= 0 {
		return nil, nil
	}
	var rows []models.Contact
	q := s.db.WithContext(ctx).Model(&models.Contact{}).Where("id IN ?", ids)
	if errFind := s.searchScope(q, search).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("store: range contacts by ids: %w", errFind)
	}
	return rows, nil
}

// Recent returns the newest contacts without exposing direct-reach fields.
func (s *ContactStore) Recent(ctx context.Context, limit int) ([]models.Contact, error) {
	var rows []models.Contact
	if errFind := s.db.WithContext(ctx).Model(&models.Contact{}).
		Select("id", "first_name", "last_name", "title", "department", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("store: recent contacts: %w", errFind)
	}
	return rows, nil
}
