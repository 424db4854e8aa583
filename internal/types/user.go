package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner entity for all practice data. Authentication and
// session management live in an external identity service; this row only
// anchors foreign keys and display metadata.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	Timezone    string    `gorm:"column:timezone;not null;default:'UTC'" json:"timezone"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
