package types

import (
	"time"

	"github.com/google/uuid"
)

// UnlockedBadge records that a user unlocked a catalog badge. Unlocking is
// monotonic: the unique (user_id, badge_id) index makes duplicate unlock
// attempts no-ops, which is what keeps achievement evaluation idempotent
// under replay and concurrent calls.
type UnlockedBadge struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BadgeID    string    `gorm:"column:badge_id;not null;index:idx_user_badge,unique" json:"badge_id"`
	UnlockedAt time.Time `gorm:"column:unlocked_at;not null;default:now()" json:"unlocked_at"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UnlockedBadge) TableName() string { return "unlocked_badge" }
