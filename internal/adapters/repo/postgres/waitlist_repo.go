package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/brainbattle/internal/domain"
)

type WaitlistRepo struct{ db *gorm.DB }

func NewWaitlistRepo(db *gorm.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

// Migrate creates or updates the tables this repository owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.WaitlistSignup{})
}

// Save stores a signup. Signing up twice for the same mission is a no-op.
func (r *WaitlistRepo) Save(ctx context.Context, s *domain.WaitlistSignup) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Mission = strings.TrimSpace(s.Mission)
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}, {Name: "mission"}},
			DoNothing: true,
		}).
		Create(s).Error
}

func (r *WaitlistRepo) List(ctx context.Context) ([]domain.WaitlistSignup, error) {
	var list []domain.WaitlistSignup
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

var _ domain.WaitlistRepo = (*WaitlistRepo)(nil)
