package views

import (
	"slices"
	"time"

	"shootboard/models"
)

// Profile is the profile screen with the user's selectable crew skills.
type Profile struct {
	User         models.User
	AllCrewTypes []models.CrewType
	CrewIDs      []uint
	Editing      bool
	Flash        Flash
}

// CrewToggle is the remote action a click on a crew type asks for.
type CrewToggle struct {
	CrewID uint
	Add    bool
}

func (p Profile) HasCrewType(crewID uint) bool {
	return slices.Contains(p.CrewIDs, crewID)
}

func (p Profile) ToggleCrewType(crewID uint) CrewToggle {
	return CrewToggle{CrewID: crewID, Add: !p.HasCrewType(crewID)}
}

// ApplyToggle folds the result of a toggle into the model. On failure the id
// set is untouched.
func (p Profile) ApplyToggle(t CrewToggle, err error, now time.Time) Profile {
	if err != nil {
		p.Flash = errorFlash(err, now)
		return p
	}
	ids := slices.Clone(p.CrewIDs)
	if t.Add {
		if !slices.Contains(ids, t.CrewID) {
			ids = append(ids, t.CrewID)
		}
		p.Flash = NewFlash(FlashSuccess, "Crew type added", now)
	} else {
		ids = slices.DeleteFunc(ids, func(id uint) bool { return id == t.CrewID })
		p.Flash = NewFlash(FlashSuccess, "Crew type removed", now)
	}
	p.CrewIDs = ids
	return p
}

// SelectedCrewTypes returns the user's crew types in vocabulary order.
func (p Profile) SelectedCrewTypes() []models.CrewType {
	out := make([]models.CrewType, 0, len(p.CrewIDs))
	for _, ct := range p.AllCrewTypes {
		if p.HasCrewType(ct.ID) {
			out = append(out, ct)
		}
	}
	return out
}

func (p Profile) StartEditing() Profile {
	p.Editing = true
	return p
}

func (p Profile) Saved(user *models.User, err error, now time.Time) Profile {
	if err != nil {
		p.Flash = errorFlash(err, now)
		return p
	}
	p.User = *user
	p.Editing = false
	p.Flash = NewFlash(FlashSuccess, "Profile updated successfully!", now)
	return p
}

// VisibleFlash returns the flash if it has not expired yet.
func (p Profile) VisibleFlash(now time.Time) (Flash, bool) {
	if !p.Flash.Active(now) {
		return Flash{}, false
	}
	return p.Flash, true
}
