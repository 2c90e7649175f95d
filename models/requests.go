package models

import (
	"time"
)

// Request and response bodies shared by the HTTP handlers and the client.

type CreateProjectRequest struct {
	Name            string `json:"project_name"`
	ProducerCompany string `json:"producer_company"`
	Description     string `json:"description,omitempty"`
}

type ShootDetails struct {
	Description   string     `json:"description"`
	StreetAddress string     `json:"location_street_address"`
	City          string     `json:"location_city"`
	State         string     `json:"location_state"`
	Country       string     `json:"location_country"`
	Lat           *float64   `json:"location_lat,omitempty"`
	Lng           *float64   `json:"location_lng,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	ContactInfo   string     `json:"contact_info,omitempty"`
	RideshareInfo string     `json:"rideshare_info,omitempty"`
	ImageURLs     []string   `json:"image_urls,omitempty"`
}

type CreateShootRequest struct {
	Project CreateProjectRequest `json:"project"`
	Shoot   ShootDetails         `json:"shoot"`
	CrewIDs []uint               `json:"crew_ids"`
}

type AddCrewTypeRequest struct {
	CrewID uint `json:"crew_id"`
}

type ProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
