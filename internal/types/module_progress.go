package types

import (
	"time"

	"github.com/google/uuid"
)

// ModuleCount is the size of the fixed learning-module curriculum; the
// "completed all modules" badge keys off this.
const ModuleCount = 14

// ModuleProgress marks a curriculum module as completed by a user, with an
// optional reflection. One row per (user, module number).
type ModuleProgress struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_module,unique" json:"user_id"`
	User         *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ModuleNumber int        `gorm:"column:module_number;not null;index:idx_user_module,unique" json:"module_number"`
	Reflection   string     `gorm:"column:reflection" json:"reflection,omitempty"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (ModuleProgress) TableName() string { return "module_progress" }
