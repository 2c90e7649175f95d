package models

import (
	"time"

	"github.com/google/uuid"
)

type FilmProject struct {
	ID              uint        `gorm:"primaryKey;column:project_id" json:"project_id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Name            string      `gorm:"column:project_name;not null;size:200" json:"project_name"`
	ProducerCompany string      `gorm:"not null;size:200" json:"producer_company"`
	Description     string      `gorm:"not null" json:"description"`
	CreatedBy       *uuid.UUID  `gorm:"type:uuid;index" json:"created_by,omitempty"`
	Shoots          []FilmShoot `gorm:"foreignKey:ProjectID" json:"filmshoots,omitempty"`
}
