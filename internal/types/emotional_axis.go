package types

import (
	"time"

	"github.com/google/uuid"
)

// EmotionalAxis is a bipolar scale the user calibrates (e.g. Fear ↔
// Courage). Axes are soft-deleted via IsActive so historical measurements
// stay intact; DisplayOrder is unique among a user's active axes.
type EmotionalAxis struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LeftLabel    string    `gorm:"column:left_label;not null" json:"left_label"`
	RightLabel   string    `gorm:"column:right_label;not null" json:"right_label"`
	ContextTag   string    `gorm:"column:context_tag" json:"context_tag,omitempty"`
	Description  string    `gorm:"column:description" json:"description,omitempty"`
	Color        string    `gorm:"column:color" json:"color,omitempty"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EmotionalAxis) TableName() string { return "emotional_axis" }
