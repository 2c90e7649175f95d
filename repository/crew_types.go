package repository

import (
	"context"

	"shootboard/models"
)

// ListCrewTypes returns the whole vocabulary sorted by name as stored.
func (s *Store) ListCrewTypes(ctx context.Context) ([]models.CrewType, error) {
	crewTypes := []models.CrewType{}
	if err := s.db.WithContext(ctx).Order("crew_name ASC").Find(&crewTypes).Error; err != nil {
		return nil, translate(err, "list crew types")
	}
	return crewTypes, nil
}

func (s *Store) CreateCrewType(ctx context.Context, ct *models.CrewType) error {
	if ct.Name == "" {
		return validationf("crew_name is required")
	}
	ct.ID = 0
	if err := s.db.WithContext(ctx).Create(ct).Error; err != nil {
		return translate(err, "create crew type")
	}
	return nil
}
