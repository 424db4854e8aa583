package types

import (
	"time"

	"github.com/google/uuid"
)

// Connection statuses.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionDeclined = "declined"
	ConnectionBlocked  = "blocked"
)

// Connection is an invite-only accountability link between two users.
// Only the invited user may change the status.
type Connection struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ConnectedUserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"connected_user_id"`
	ConnectedUser   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConnectedUserID;references:ID" json:"connected_user,omitempty"`
	Status          string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	InvitedAt       time.Time  `gorm:"column:invited_at;not null;default:now()" json:"invited_at"`
	AcceptedAt      *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Connection) TableName() string { return "connection" }
