package models

import (
	"time"
)

type CrewType struct {
	ID        uint      `gorm:"primaryKey;column:crew_id" json:"crew_id"`
	Name      string    `gorm:"column:crew_name;uniqueIndex;not null;size:100" json:"crew_name"`
	CreatedAt time.Time `json:"created_at"`
}
