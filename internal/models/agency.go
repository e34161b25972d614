package models

import "time"

// Agency represents a directory agency record.
type Agency struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name   string `gorm:"type:text;not null;index"` // Agency name.
	State  string `gorm:"type:text;index"`          // State code or name.
	County string `gorm:"type:text"`                // County name.
	Type   string `gorm:"type:text"`                // Agency category.

	Website string `gorm:"type:text"` // Public website URL.
	Phone   string `gorm:"type:text"` // Main phone number.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
