package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shootboard/models"
)

type ProfileUpdate struct {
	Username  string
	FirstName string
	LastName  string
	Bio       string
}

func (s *Store) usernameTaken(tx *gorm.DB, username string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.User{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("user_id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts u. A missing AuthID is generated.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return validationf("username is required")
	}
	if u.PasswordHash == "" {
		return validationf("password is required")
	}
	if u.AuthID == uuid.Nil {
		u.AuthID = uuid.New()
	}
	u.ID = 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.usernameTaken(tx, u.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
		return tx.Omit(clause.Associations).Create(u).Error
	})
	return translate(err, "create user")
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (s *Store) GetUserByAuthID(ctx context.Context, authID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("auth_id = ?", authID).First(&user).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

// UpdateProfile overwrites the editable profile fields, including empty ones.
func (s *Store) UpdateProfile(ctx context.Context, id uint, upd ProfileUpdate) (*models.User, error) {
	upd.Username = strings.TrimSpace(upd.Username)
	if upd.Username == "" {
		return nil, validationf("username is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		taken, err := s.usernameTaken(tx, upd.Username, id)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %q: %w", upd.Username, ErrConflict)
		}
		user.Username = upd.Username
		user.FirstName = upd.FirstName
		user.LastName = upd.LastName
		user.Bio = upd.Bio
		return tx.Model(&user).
			Select("username", "first_name", "last_name", "bio", "updated_at").
			Updates(&user).Error
	})
	if err != nil {
		return nil, translate(err, "update profile")
	}
	return &user, nil
}

// CrewRef is the id-only projection of a user's crew association.
type CrewRef struct {
	CrewID uint `json:"crew_id"`
}

func (s *Store) ListUserCrewTypes(ctx context.Context, userID uint) ([]CrewRef, error) {
	refs := []CrewRef{}
	err := s.db.WithContext(ctx).
		Model(&models.UserCrewType{}).
		Select("crew_id").
		Where("user_id = ?", userID).
		Order("crew_id ASC").
		Find(&refs).Error
	if err != nil {
		return nil, translate(err, "list user crew types")
	}
	return refs, nil
}

// AddUserCrewType inserts the (user, crew) pair. An existing pair is a
// conflict, not an upsert.
func (s *Store) AddUserCrewType(ctx context.Context, userID, crewID uint) (*models.UserCrewType, error) {
	link := models.UserCrewType{UserID: userID, CrewID: crewID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "user_id = ?", userID, "user"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.CrewType{}, "crew_id = ?", crewID, "crew type"); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.UserCrewType{}).
			Where("user_id = ? AND crew_id = ?", userID, crewID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("crew type %d already on user %d: %w", crewID, userID, ErrConflict)
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, translate(err, "add user crew type")
	}
	return &link, nil
}

// RemoveUserCrewType deletes the pair, or reports ErrNotFound when it is
// absent.
func (s *Store) RemoveUserCrewType(ctx context.Context, userID, crewID uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND crew_id = ?", userID, crewID).
		Delete(&models.UserCrewType{})
	if res.Error != nil {
		return translate(res.Error, "remove user crew type")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "remove user crew type")
	}
	return nil
}

func mustExist(tx *gorm.DB, model any, cond string, id uint, what string) error {
	var count int64
	if err := tx.Model(model).Where(cond, id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
