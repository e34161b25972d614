package models

import "time"

// Contact represents a directory contact record.
//
// The autoincrement ID is the stable, totally ordered key used for
// pagination, rotation windows and tie-breaking. Contacts are read-only
// from the quota subsystem's perspective.
type Contact struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key and stable sort key.

	AgencyID *uint64 `gorm:"index"`                  // Owning agency ID, when known.
	Agency   *Agency `gorm:"foreignKey:AgencyID"`    // Owning agency.

	FirstName  string `gorm:"type:text;not null;index"` // Given name.
	LastName   string `gorm:"type:text;not null;index"` // Family name.
	Title      string `gorm:"type:text;index"`          // Job title.
	Department string `gorm:"type:text"`                // Department name.
	Email      string `gorm:"type:text;index"`          // Work email address.
	Phone      string `gorm:"type:text"`                // Work phone number.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
