package services

import (
	"context"
	"errors"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// SettingsService handles company settings
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents a partial settings update
type UpdateSettingsInput struct {
	CompanyName          *string  `json:"company_name"`
	WorkingHoursStart    *string  `json:"working_hours_start"`
	WorkingHoursEnd      *string  `json:"working_hours_end"`
	OvertimeRate         *float64 `json:"overtime_rate"`
	AutoCheckout         *bool    `json:"auto_checkout"`
	AutoCheckoutTime     *string  `json:"auto_checkout_time"`
	NotificationsEnabled *bool    `json:"notifications_enabled"`
	RequirePhoto         *bool    `json:"require_photo"`
}

// Get returns the company settings, creating the default row when the
// table is still empty
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.createDefaults(ctx)
		}
		return nil, err
	}
	return settings, nil
}

// Update applies the non-nil fields and returns the updated settings
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.AppSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.WorkingHoursStart != nil {
		settings.WorkingHoursStart = *input.WorkingHoursStart
	}
	if input.WorkingHoursEnd != nil {
		settings.WorkingHoursEnd = *input.WorkingHoursEnd
	}
	if input.OvertimeRate != nil {
		if *input.OvertimeRate <= 0 {
			return nil, errors.New("overtime rate must be positive")
		}
		settings.OvertimeRate = *input.OvertimeRate
	}
	if input.AutoCheckout != nil {
		settings.AutoCheckout = *input.AutoCheckout
	}
	if input.AutoCheckoutTime != nil {
		settings.AutoCheckoutTime = *input.AutoCheckoutTime
	}
	if input.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.RequirePhoto != nil {
		settings.RequirePhoto = *input.RequirePhoto
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *SettingsService) createDefaults(ctx context.Context) (*models.AppSettings, error) {
	settings := &models.AppSettings{
		CompanyName:          "StaffClock",
		WorkingHoursStart:    "09:00",
		WorkingHoursEnd:      "18:00",
		OvertimeRate:         DefaultOvertimeRate,
		AutoCheckout:         false,
		AutoCheckoutTime:     "23:00",
		NotificationsEnabled: true,
		RequirePhoto:         true,
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
