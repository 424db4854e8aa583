package types

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard is a spaced-repetition item scheduled with SM-2. EaseFactor
// never drops below 1.3 and IntervalDays never drops below 1 once the card
// has been scheduled. Cards are mutated on every review and may be hard
// deleted by the owner.
type Flashcard struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Front          string     `gorm:"column:front;not null" json:"front"`
	Back           string     `gorm:"column:back;not null" json:"back"`
	DeckName       string     `gorm:"column:deck_name;index" json:"deck_name,omitempty"`
	EaseFactor     float64    `gorm:"column:ease_factor;not null;default:2.5" json:"ease_factor"`
	IntervalDays   int        `gorm:"column:interval_days;not null;default:0" json:"interval_days"`
	Repetitions    int        `gorm:"column:repetitions;not null;default:0" json:"repetitions"`
	LastReviewedAt *time.Time `gorm:"column:last_reviewed_at" json:"last_reviewed_at,omitempty"`
	NextDueAt      *time.Time `gorm:"column:next_due_at;index" json:"next_due_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Flashcard) TableName() string { return "flashcard" }
