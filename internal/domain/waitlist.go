package domain

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistSignup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"size:140;not null;uniqueIndex:idx_waitlist_email_mission"`
	Mission   string    `gorm:"size:120;not null;uniqueIndex:idx_waitlist_email_mission"`
	CreatedAt time.Time `gorm:"index"`
}

func (WaitlistSignup) TableName() string { return "waitlist_signups" }
