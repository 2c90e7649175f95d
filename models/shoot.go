package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FilmShoot is a single scheduled filming event. Optional columns are
// pointers so that absent values persist as NULL.
type FilmShoot struct {
	ID                 uint                        `gorm:"primaryKey;column:shoot_id" json:"shoot_id"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
	ProjectID          uint                        `gorm:"not null;index" json:"project_id"`
	Project            *FilmProject                `gorm:"foreignKey:ProjectID" json:"film_projects,omitempty"`
	Description        string                      `gorm:"not null" json:"description"`
	StreetAddress      string                      `gorm:"column:location_street_address;size:300" json:"location_street_address"`
	City               string                      `gorm:"column:location_city;size:100;index" json:"location_city"`
	State              string                      `gorm:"column:location_state;size:100" json:"location_state"`
	Country            string                      `gorm:"column:location_country;size:100" json:"location_country"`
	Lat                *float64                    `gorm:"column:location_lat" json:"location_lat,omitempty"`
	Lng                *float64                    `gorm:"column:location_lng" json:"location_lng,omitempty"`
	StartTime          time.Time                   `gorm:"not null;index" json:"start_time"`
	EndTime            *time.Time                  `json:"end_time,omitempty"`
	ContactInfo        *string                     `gorm:"size:500" json:"contact_info,omitempty"`
	RideshareInfo      *string                     `gorm:"size:500" json:"rideshare_info,omitempty"`
	ImageURLs          datatypes.JSONSlice[string] `gorm:"column:image_urls" json:"image_urls,omitempty"`
	CreatedBy          *uuid.UUID                  `gorm:"type:uuid;index" json:"created_by,omitempty"`
	RequestedCrewTypes []CrewType                  `gorm:"many2many:shoot_crew_types_requested;joinForeignKey:ShootID;joinReferences:CrewID" json:"crew_types_requested,omitempty"`
}

func (s *FilmShoot) RequestsCrewType(crewID uint) bool {
	for _, ct := range s.RequestedCrewTypes {
		if ct.ID == crewID {
			return true
		}
	}
	return false
}

func (s *FilmShoot) ProjectName() string {
	if s.Project == nil {
		return ""
	}
	return s.Project.Name
}

// ShootCrewTypeRequested records a crew role a shoot is asking for.
type ShootCrewTypeRequested struct {
	ShootID uint `gorm:"primaryKey" json:"shoot_id"`
	CrewID  uint `gorm:"primaryKey" json:"crew_id"`
}

func (ShootCrewTypeRequested) TableName() string {
	return "shoot_crew_types_requested"
}
