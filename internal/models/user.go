package models

import "time"

// User represents an end-user account stored in the database.
//
// Rows are provisioned lazily: the auth middleware upserts by Subject on the
// first authenticated request, so concurrent first requests resolve to the
// same canonical row.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Subject  string `gorm:"type:text;not null;uniqueIndex"` // External identity subject.
	Email    string `gorm:"type:text;uniqueIndex"`          // Email address.
	Password string `gorm:"type:text"`                      // Hashed password, empty for externally provisioned users.

	IsAdmin bool `gorm:"not null;default:false"` // Exempts the user from all quota logic.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
