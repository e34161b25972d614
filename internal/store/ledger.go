package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	dbutil "github.com/agencydesk/agencydesk/internal/db"
	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayUsage is the ledger state for one user on one UTC calendar date.
// The zero value means "nothing unlocked yet".
type DayUsage struct {
	ViewedCount      int      // Always equals len(ViewedContactIDs).
	ViewedContactIDs []uint64 // Contact IDs charged against today's quota.
}

// IDSet returns the unlocked IDs as a membership set.
func (u DayUsage) IDSet() map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(u.ViewedContactIDs))
	for _, id := range u.ViewedContactIDs {
		set[id] = struct{}{}
	}
	return set
}

// LedgerStore persists per-user, per-day contact unlock records.
//
// Charge state is a set of contact IDs; the stored count is derived from the
// set on every write and is never incremented independently. That makes
// charges idempotent and keeps concurrent chargers from double-counting.
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore constructs a LedgerStore backed by GORM.
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Get returns the ledger entry for the user on the given date key, or the
// zero value when no entry exists.
func (s *LedgerStore) Get(ctx context.Context, userID uint64, date string) (DayUsage, error) {
	var row models.DailyUsage
	errFind := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return DayUsage{}, nil
		}
		return DayUsage{}, fmt.Errorf("store: load ledger: %w", errFind)
	}

	ids, errDecode := row.ContactIDs()
	if errDecode != nil {
		return DayUsage{}, fmt.Errorf("store: decode ledger ids: %w", errDecode)
	}
	// The stored count is authoritative for quota checks; Charge rewrites it
	// from the set on every successful write, so the two only diverge on rows
	// written by older additive-counter code.
	return DayUsage{ViewedCount: row.ViewedCount, ViewedContactIDs: ids}, nil
}

// GetToday returns the ledger entry for the user's current UTC date.
func (s *LedgerStore) GetToday(ctx context.Context, userID uint64) (DayUsage, error) {
	return s.Get(ctx, userID, models.DateKey(time.Now()))
}

// Charge merges newIDs into the user's ledger entry for the given date and
// returns the resulting total count.
//
// The merge runs inside a transaction: the row is claimed with an
// insert-or-ignore upsert, locked (FOR UPDATE on PostgreSQL; SQLite
// serializes writers on its own), read, unioned and written back. Two
// concurrent charges therefore end up with the union of both ID sets, never
// a last-writer-wins overwrite. Charging an already-present ID is a no-op,
// and an empty newIDs performs no write at all.
func (s *LedgerStore) Charge(ctx context.Context, userID uint64, date string, newIDs []uint64) (int, error) {
	if len(newIDs) == 0 {
		current, errGet := s.Get(ctx, userID, date)
		if errGet != nil {
			return 0, errGet
		}
		return current.ViewedCount, nil
	}

	var total int
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.DailyUsage{
			UserID:           userID,
			Date:             date,
			ViewedCount:      0,
			ViewedContactIDs: datatypes.JSON([]byte("[]")),
		}
		if errSeed := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoNothing: true,
			}).
			Create(&seed).Error; errSeed != nil {
			return fmt.Errorf("store: seed ledger row: %w", errSeed)
		}

		q := tx.Where("user_id = ? AND date = ?", userID, date)
		if !dbutil.IsSQLite(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row models.DailyUsage
		if errFind := q.First(&row).Error; errFind != nil {
			return fmt.Errorf("store: lock ledger row: %w", errFind)
		}

		existing, errDecode := row.ContactIDs()
		if errDecode != nil {
			return fmt.Errorf("store: decode ledger ids: %w", errDecode)
		}

		set := make(map[uint64]struct{}, len(existing)+len(newIDs))
		for _, id := range existing {
			set[id] = struct{}{}
		}
		grew := false
		for _, id := range newIDs {
			if _, ok := set[id]; !ok {
				set[id] = struct{}{}
				grew = true
			}
		}
		total = len(set)
		if !grew {
			return nil
		}

		merged := make([]uint64, 0, len(set))
		for id := range set {
			merged = append(merged, id)
		}
		sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })

		encoded, errMarshal := json.Marshal(merged)
		if errMarshal != nil {
			return fmt.Errorf("store: encode ledger ids: %w", errMarshal)
		}
		if errUpdate := tx.Model(&models.DailyUsage{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"viewed_count":       len(merged),
				"viewed_contact_ids": datatypes.JSON(encoded),
			}).Error; errUpdate != nil {
			return fmt.Errorf("store: update ledger row: %w", errUpdate)
		}
		return nil
	})
	if errTx != nil {
		return 0, errTx
	}
	return total, nil
}

// SumSince returns the sum of daily viewed counts for a user across all
// dates greater than or equal to the given date key.
func (s *LedgerStore) SumSince(ctx context.Context, userID uint64, date string) (int64, error) {
	var sum int64
	if errScan := s.db.WithContext(ctx).Model(&models.DailyUsage{}).
		Where("user_id = ? AND date >= ?", userID, date).
		Select("COALESCE(SUM(viewed_count), 0)").
		Scan(&sum).Error; errScan != nil {
		return 0, fmt.Errorf("store: sum ledger: %w", errScan)
	}
	return sum, nil
}
