package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"staffclock/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ============================================================
// Auto-checkout: close forgotten open sessions at a configured time
// ============================================================

// AutoCheckoutService closes attendance sessions still open after the
// configured auto-checkout time. Disabled unless company settings turn
// it on.
type AutoCheckoutService struct {
	attendanceRepo repositories.AttendanceRepository
	settingsRepo   repositories.SettingsRepository
	cron           *cron.Cron

	now func() time.Time
}

// NewAutoCheckoutService creates a new auto-checkout service
func NewAutoCheckoutService(db *gorm.DB) *AutoCheckoutService {
	return &AutoCheckoutService{
		attendanceRepo: repositories.NewAttendanceRepository(db),
		settingsRepo:   repositories.NewSettingsRepository(db),
		cron:           cron.New(),
		now:            time.Now,
	}
}

// Start schedules the sweep once a minute
func (s *AutoCheckoutService) Start() {
	s.cron.AddFunc("* * * * *", s.sweep)
	s.cron.Start()
	log.Println("🚀 AutoCheckoutService started")
}

// Stop stops the scheduler
func (s *AutoCheckoutService) Stop() {
	s.cron.Stop()
	log.Println("🛑 AutoCheckoutService stopped")
}

// sweep closes today's open sessions once the cutoff has passed
func (s *AutoCheckoutService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return // no settings row yet
	}
	if !settings.AutoCheckout || settings.AutoCheckoutTime == "" {
		return
	}

	now := s.now()
	cutoff, err := cutoffForDay(now, settings.AutoCheckoutTime)
	if err != nil {
		log.Printf("❌ Invalid auto-checkout time %q: %v", settings.AutoCheckoutTime, err)
		return
	}
	if now.Before(cutoff) {
		return
	}

	logs, err := s.attendanceRepo.ListOpenByDate(ctx, now.Format(DateLayout))
	if err != nil {
		log.Printf("❌ Auto-checkout query error: %v", err)
		return
	}

	closed := 0
	for _, entry := range logs {
		totalHours := now.Sub(entry.ClockInTime).Hours()
		if totalHours < 0 {
			continue
		}

		// Conditional update; zero rows means the employee clocked out
		// in the meantime, which is fine.
		rows, err := s.attendanceRepo.Close(ctx, entry.ID, now, "", totalHours)
		if err != nil {
			log.Printf("❌ Auto-checkout for log %s error: %v", entry.ID, err)
			continue
		}
		if rows > 0 {
			closed++
		}
	}

	if closed > 0 {
		log.Printf("⏰ Auto-checkout: closed %d open sessions", closed)
	}
}

// cutoffForDay parses HH:MM and anchors it on the given day
func cutoffForDay(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse auto-checkout time: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
