package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore resolves and provisions user accounts.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore constructs a UserStore backed by GORM.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreate returns the canonical user row for an identity subject,
// creating it when absent.
//
// The insert is an ON CONFLICT DO NOTHING upsert on the subject's unique
// index, so concurrent first requests for the same subject all resolve to
// the row whichever caller managed to create.
func (s *UserStore) GetOrCreate(ctx context.Context, subject, email string) (models.User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return models.User{}, fmt.Errorf("store: empty subject")
	}

	row := models.User{Subject: subject, Email: strings.TrimSpace(email)}
	if errCreate := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject"}},
			DoNothing: true,
		}).
		Create(&row).Error; errCreate != nil {
		return models.User{}, fmt.Errorf("store: upsert user: %w", errCreate)
	}

	var user models.User
	if errFind := s.db.WithContext(ctx).
		Where("subject = ?", subject).
		First(&user).Error; errFind != nil {
		return models.User{}, fmt.Errorf("store: load user: %w", errFind)
	}
	return user, nil
}

// GetByEmail returns the user with the given email address.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if errFind := s.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(&user).Error; errFind != nil {
		return models.User{}, errFind
	}
	return user, nil
}
