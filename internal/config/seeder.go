package config

import (
	"log"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDefaultSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "Administrator",
		Email:    "admin@staffclock.io",
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDefaultSettings creates the single app_settings row if missing
func (s *Seeder) seedDefaultSettings() error {
	var count int64
	s.db.Model(&models.AppSettings{}).Count(&count)
	if count > 0 {
		return nil
	}

	settings := &models.AppSettings{
		CompanyName:          "StaffClock",
		WorkingHoursStart:    "09:00",
		WorkingHoursEnd:      "18:00",
		OvertimeRate:         1.5,
		AutoCheckout:         false,
		AutoCheckoutTime:     "23:00",
		NotificationsEnabled: true,
		RequirePhoto:         true,
	}

	if err := s.db.Create(settings).Error; err != nil {
		return err
	}

	log.Println("✅ Default company settings created")
	return nil
}

// SeedData runs all seeders (called from main)
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
