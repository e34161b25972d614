package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DailyUsage records which contacts a user unlocked on a given UTC date.
//
// ViewedCount is always derived from the ID set on write; the two must never
// diverge. One row per (user, date), enforced by the composite unique index.
// Old rows are retained for history and never merged across days.
type DailyUsage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex:idx_daily_usage_user_date"` // Owning user ID.
	Date   string `gorm:"type:text;not null;uniqueIndex:idx_daily_usage_user_date;index"` // UTC calendar date, YYYY-MM-DD.

	ViewedCount      int            `gorm:"not null;default:0"`               // Size of ViewedContactIDs.
	ViewedContactIDs datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Unlocked contact IDs as a JSON array.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (DailyUsage) TableName() string {
	return "daily_usage"
}

// DateKey formats a timestamp as the UTC calendar date key used by DailyUsage.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ContactIDs decodes the stored JSON array of contact IDs.
func (u *DailyUsage) ContactIDs() ([]uint64, error) {
	if len(u.ViewedContactIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	if errUnmarshal := json.Unmarshal(u.ViewedContactIDs, &ids); errUnmarshal != nil {
		return nil, errUnmarshal
	}
	return ids, nil
}
