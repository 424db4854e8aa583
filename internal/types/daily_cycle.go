package types

import (
	"time"

	"github.com/google/uuid"
)

// CycleDateLayout is the storage format for DailyCycle.CycleDate. The date
// is the user-local calendar day, never derived from a UTC instant.
const CycleDateLayout = "2006-01-02"

// CyclePhase is the derived state of a DailyCycle.
type CyclePhase string

const (
	CycleNotStarted CyclePhase = "not_started"
	CycleMorning    CyclePhase = "morning_done"
	CycleMidday     CyclePhase = "midday_done"
	CycleComplete   CyclePhase = "complete"
)

// DailyCycle is one calendar day's three-phase ritual: morning calibration,
// midday decisive action, evening reflection. At most one row per (user,
// cycle date); rows are never deleted. IsComplete is set when the evening
// phase is submitted, regardless of whether midday was stamped — current
// product behavior, kept as-is.
type DailyCycle struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index:idx_cycle_user_date,unique" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CycleDate          string     `gorm:"column:cycle_date;type:varchar(10);not null;index:idx_cycle_user_date,unique" json:"cycle_date"`
	MorningCompletedAt *time.Time `gorm:"column:morning_completed_at" json:"morning_completed_at,omitempty"`
	DecisivePrompt     string     `gorm:"column:decisive_prompt" json:"decisive_prompt,omitempty"`
	IntendedAction     string     `gorm:"column:intended_action" json:"intended_action,omitempty"`
	MiddayCompletedAt  *time.Time `gorm:"column:midday_completed_at" json:"midday_completed_at,omitempty"`
	ActionTaken        string     `gorm:"column:action_taken" json:"action_taken,omitempty"`
	ObservedEffect     string     `gorm:"column:observed_effect" json:"observed_effect,omitempty"`
	Reflection         string     `gorm:"column:reflection" json:"reflection,omitempty"`
	EveningCompletedAt *time.Time `gorm:"column:evening_completed_at" json:"evening_completed_at,omitempty"`
	IsComplete         bool       `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyCycle) TableName() string { return "daily_cycle" }

// Phase derives the explicit state tag from the stamped timestamps.
func (c *DailyCycle) Phase() CyclePhase {
	switch {
	case c == nil:
		return CycleNotStarted
	case c.IsComplete || c.EveningCompletedAt != nil:
		return CycleComplete
	case c.MiddayCompletedAt != nil:
		return CycleMidday
	case c.MorningCompletedAt != nil:
		return CycleMorning
	default:
		return CycleNotStarted
	}
}
