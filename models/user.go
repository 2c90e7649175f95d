package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a profile. AuthID is the external identity carried in tokens and
// stamped on the records the user creates.
type User struct {
	ID           uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	AuthID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Username     string     `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FirstName    string     `gorm:"size:100" json:"first_name"`
	LastName     string     `gorm:"size:100" json:"last_name"`
	Bio          string     `gorm:"size:2000" json:"bio,omitempty"`
	AvatarURL    string     `gorm:"size:500" json:"avatar_url,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	CrewTypes    []CrewType `gorm:"many2many:user_crew_types;joinForeignKey:UserID;joinReferences:CrewID" json:"crew_types,omitempty"`
}

func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Username
}

// UserCrewType records that a user offers a crew skill.
type UserCrewType struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CrewID    uint      `gorm:"primaryKey" json:"crew_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserCrewType) TableName() string {
	return "user_crew_types"
}
