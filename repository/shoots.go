package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shootboard/models"
)

type ShootQuery struct {
	// From is the earliest start time returned; zero means now.
	From time.Time
	// CrewID, when set, keeps only shoots requesting that crew type.
	CrewID uint
}

func preloadShoot(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Project").
		Preload("RequestedCrewTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("crew_name ASC")
		})
}

// ListUpcomingShoots returns every shoot starting at or after q.From, soonest
// first, with its project and requested crew types.
func (s *Store) ListUpcomingShoots(ctx context.Context, q ShootQuery) ([]models.FilmShoot, error) {
	from := q.From
	if from.IsZero() {
		from = time.Now()
	}

	db := s.db.WithContext(ctx)
	tx := db.Scopes(preloadShoot).
		Where("start_time >= ?", from.UTC())
	if q.CrewID != 0 {
		requested := db.Model(&models.ShootCrewTypeRequested{}).
			Select("shoot_id").
			Where("crew_id = ?", q.CrewID)
		tx = tx.Where("shoot_id IN (?)", requested)
	}

	shoots := []models.FilmShoot{}
	if err := tx.Order("start_time ASC").Find(&shoots).Error; err != nil {
		return nil, translate(err, "list shoots")
	}
	return shoots, nil
}

func (s *Store) GetShoot(ctx context.Context, id uint) (*models.FilmShoot, error) {
	var shoot models.FilmShoot
	if err := s.db.WithContext(ctx).Scopes(preloadShoot).First(&shoot, id).Error; err != nil {
		return nil, translate(err, "get shoot")
	}
	return &shoot, nil
}

type CreateShootInput struct {
	Project models.FilmProject
	Shoot   models.FilmShoot
	CrewIDs []uint
}

func validateShoot(sh *models.FilmShoot) error {
	sh.Description = strings.TrimSpace(sh.Description)
	if sh.StartTime.IsZero() {
		return validationf("start_time is required")
	}
	if sh.EndTime != nil && sh.EndTime.Before(sh.StartTime) {
		return validationf("end_time must not be before start_time")
	}
	return nil
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateShoot writes the project, the shoot and its requested crew types in
// one transaction. Nothing is persisted unless every step succeeds.
func (s *Store) CreateShoot(ctx context.Context, in CreateShootInput) (*models.FilmShoot, error) {
	project := in.Project
	project.ID = 0
	project.Shoots = nil
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	shoot := in.Shoot
	shoot.ID = 0
	shoot.Project = nil
	shoot.RequestedCrewTypes = nil
	if err := validateShoot(&shoot); err != nil {
		return nil, err
	}
	shoot.StartTime = shoot.StartTime.UTC()
	if shoot.EndTime != nil {
		end := shoot.EndTime.UTC()
		shoot.EndTime = &end
	}
	if shoot.CreatedBy == nil {
		shoot.CreatedBy = project.CreatedBy
	}

	crewIDs := distinct(in.CrewIDs)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&project).Error; err != nil {
			return fmt.Errorf("insert project: %w", err)
		}

		shoot.ProjectID = project.ID
		if err := tx.Omit(clause.Associations).Create(&shoot).Error; err != nil {
			return fmt.Errorf("insert shoot: %w", err)
		}

		if len(crewIDs) == 0 {
			return nil
		}
		var known int64
		if err := tx.Model(&models.CrewType{}).Where("crew_id IN ?", crewIDs).Count(&known).Error; err != nil {
			return err
		}
		if known != int64(len(crewIDs)) {
			return validationf("unknown crew type in %v", crewIDs)
		}
		rows := make([]models.ShootCrewTypeRequested, 0, len(crewIDs))
		for _, id := range crewIDs {
			rows = append(rows, models.ShootCrewTypeRequested{ShootID: shoot.ID, CrewID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert requested crew types: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "create shoot")
	}

	return s.GetShoot(ctx, shoot.ID)
}
