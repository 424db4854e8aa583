package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Insight types.
const (
	InsightDaily       = "daily"
	InsightWeekly      = "weekly"
	InsightPattern     = "pattern"
	InsightCauseEffect = "cause_effect"
)

// Insight is a stored pattern summary delivered to the user. Received
// insights and high ratings feed the insight badge counters.
type Insight struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	InsightType string         `gorm:"column:insight_type;not null;index" json:"insight_type"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Content     string         `gorm:"column:content;not null" json:"content"`
	PatternData datatypes.JSON `gorm:"type:jsonb;column:pattern_data" json:"pattern_data,omitempty"`
	IsRead      bool           `gorm:"column:is_read;not null;default:false" json:"is_read"`
	UserRating  *int           `gorm:"column:user_rating" json:"user_rating,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Insight) TableName() string { return "insight" }
