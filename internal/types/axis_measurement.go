package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Phase tags for AxisMeasurement.
const (
	PhaseMorning = "morning"
	PhaseMidday  = "midday"
	PhaseEvening = "evening"
	PhaseManual  = "manual"
)

// AxisMeasurement is one calibration sample on an axis, value 0-100.
// ClientTimestamp is authoritative for ordering. Rows are immutable once
// written; soft-deleting an axis does not touch its measurements.
type AxisMeasurement struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AxisID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"axis_id"`
	Axis            *EmotionalAxis `gorm:"constraint:OnDelete:CASCADE;foreignKey:AxisID;references:ID" json:"axis,omitempty"`
	DailyCycleID    *uuid.UUID     `gorm:"type:uuid;index" json:"daily_cycle_id,omitempty"`
	Value           int            `gorm:"column:value;not null" json:"value"`
	Phase           string         `gorm:"column:phase;not null" json:"phase"`
	Note            string         `gorm:"column:note" json:"note,omitempty"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	ClientTimestamp time.Time      `gorm:"column:client_timestamp;not null;index" json:"client_timestamp"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AxisMeasurement) TableName() string { return "axis_measurement" }
