package repositories

import (
	"context"

	"staffclock/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row
func (r *settingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	var settings models.AppSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the settings row
func (r *settingsRepository) Save(ctx context.Context, settings *models.AppSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
