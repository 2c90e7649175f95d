package views

import (
	"shootboard/client"
	"shootboard/feed"
	"shootboard/models"
)

// Feed is the upcoming-shoots screen. Changing the crew filter needs a
// refetch; search and location are recomputed in memory.
type Feed struct {
	CrewTypes []models.CrewType
	Shoots    []models.FilmShoot
	CrewID    uint
	Search    string
	Location  string
	Loading   bool
	Err       string
}

// SelectCrewType reports whether the selection changed and a refetch is due.
// Zero clears the filter.
func (f Feed) SelectCrewType(crewID uint) (Feed, bool) {
	if f.CrewID == crewID {
		return f, false
	}
	f.CrewID = crewID
	f.Loading = true
	return f, true
}

func (f Feed) SetSearch(s string) Feed {
	f.Search = s
	return f
}

func (f Feed) SetLocation(s string) Feed {
	f.Location = s
	return f
}

func (f Feed) CrewTypesLoaded(crewTypes []models.CrewType) Feed {
	f.CrewTypes = crewTypes
	return f
}

// Loaded records a fetch result. A failed fetch keeps the previous shoots.
func (f Feed) Loaded(shoots []models.FilmShoot, err error) Feed {
	f.Loading = false
	if err != nil {
		f.Err = err.Error()
		return f
	}
	f.Err = ""
	f.Shoots = shoots
	return f
}

// Params is the remote query for the current state.
func (f Feed) Params() client.ShootParams {
	return client.ShootParams{CrewID: f.CrewID}
}

func (f Feed) Visible() []models.FilmShoot {
	return feed.Filter{Search: f.Search, Location: f.Location, CrewID: f.CrewID}.Apply(f.Shoots)
}

func (f Feed) Empty() bool {
	return !f.Loading && len(f.Visible()) == 0
}
