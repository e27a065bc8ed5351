package profilestore

import (
	"context"
	"errors"
	"fmt"

	"accounthub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists profiles in the profiles table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, userID string) (models.Profile, error) {
	id, err := normalizeID(userID)
	if err != nil {
		return models.Profile{}, err
	}
	var row models.ProfileRow
	if err := s.db.WithContext(ctx).Where("user_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("load profile %s: %w", id, err)
	}
	return row.Profile(), nil
}

// Set upserts on user_id, replacing every column of an existing row.
func (s *GormStore) Set(ctx context.Context, userID string, p models.Profile) error {
	id, err := normalizeID(userID)
	if err != nil {
		return err
	}
	p.UserID = id
	row := models.NewProfileRow(p)
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save profile %s: %w", id, err)
	}
	return nil
}
