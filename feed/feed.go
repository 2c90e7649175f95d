// Package feed holds the in-memory filters applied to the upcoming-shoot feed.
package feed

import (
	"strings"

	"shootboard/models"
)

// Filter narrows a list of shoots. Zero-valued fields match everything; set
// fields are combined with AND.
type Filter struct {
	// Search matches the shoot description or the project name.
	Search string
	// Location matches the city or the state.
	Location string
	CrewID   uint
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && strings.TrimSpace(f.Location) == "" && f.CrewID == 0
}

func (f Filter) Match(s *models.FilmShoot) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		if !containsFold(s.Description, q) && !containsFold(s.ProjectName(), q) {
			return false
		}
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		if !containsFold(s.City, loc) && !containsFold(s.State, loc) {
			return false
		}
	}
	if f.CrewID != 0 && !s.RequestsCrewType(f.CrewID) {
		return false
	}
	return true
}

// Apply returns the matching shoots in their original order. The input slice
// is not modified.
func (f Filter) Apply(shoots []models.FilmShoot) []models.FilmShoot {
	out := make([]models.FilmShoot, 0, len(shoots))
	for i := range shoots {
		if f.Match(&shoots[i]) {
			out = append(out, shoots[i])
		}
	}
	return out
}
