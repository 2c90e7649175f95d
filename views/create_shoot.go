package views

import (
	"errors"
	"slices"
	"strings"
	"time"

	"shootboard/models"
)

// CreateShootForm is the post-a-shoot screen.
type CreateShootForm struct {
	ProjectName        string
	ProducerCompany    string
	ProjectDescription string
	ShootDescription   string
	StreetAddress      string
	City               string
	State              string
	Country            string
	StartTime          time.Time
	EndTime            *time.Time
	ContactInfo        string
	RideshareInfo      string
	SelectedCrewTypes  []uint

	Submitting bool
	Err        string
}

// ToggleCrewType adds the id if absent and removes it otherwise.
func (f CreateShootForm) ToggleCrewType(crewID uint) CreateShootForm {
	selected := slices.Clone(f.SelectedCrewTypes)
	if i := slices.Index(selected, crewID); i >= 0 {
		f.SelectedCrewTypes = slices.Delete(selected, i, i+1)
		return f
	}
	f.SelectedCrewTypes = append(selected, crewID)
	return f
}

func (f CreateShootForm) IsSelected(crewID uint) bool {
	return slices.Contains(f.SelectedCrewTypes, crewID)
}

func (f CreateShootForm) Validate() error {
	var errs []error
	if strings.TrimSpace(f.ProjectName) == "" {
		errs = append(errs, errors.New("project name is required"))
	}
	if strings.TrimSpace(f.ProducerCompany) == "" {
		errs = append(errs, errors.New("producer company is required"))
	}
	if f.StartTime.IsZero() {
		errs = append(errs, errors.New("start time is required"))
	}
	if f.EndTime != nil && f.EndTime.Before(f.StartTime) {
		errs = append(errs, errors.New("end time must not be before start time"))
	}
	return errors.Join(errs...)
}

func (f CreateShootForm) Request() models.CreateShootRequest {
	return models.CreateShootRequest{
		Project: models.CreateProjectRequest{
			Name:            f.ProjectName,
			ProducerCompany: f.ProducerCompany,
			Description:     f.ProjectDescription,
		},
		Shoot: models.ShootDetails{
			Description:   f.ShootDescription,
			StreetAddress: f.StreetAddress,
			City:          f.City,
			State:         f.State,
			Country:       f.Country,
			StartTime:     f.StartTime,
			EndTime:       f.EndTime,
			ContactInfo:   f.ContactInfo,
			RideshareInfo: f.RideshareInfo,
		},
		CrewIDs: slices.Clone(f.SelectedCrewTypes),
	}
}

func (f CreateShootForm) Submit() CreateShootForm {
	f.Submitting = true
	f.Err = ""
	return f
}

// Submitted records the outcome. Done is true only when the shoot was
// created and the screen should navigate back to the feed.
func (f CreateShootForm) Submitted(err error) (form CreateShootForm, done bool) {
	f.Submitting = false
	if err != nil {
		f.Err = err.Error()
		return f, false
	}
	f.Err = ""
	return f, true
}
