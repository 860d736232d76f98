package services

import (
	"context"
	"testing"
	"time"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"
)

func TestAutoCheckoutSweepClosesOpenSessions(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.AppSettings{
		CompanyName:      "Test",
		OvertimeRate:     1.5,
		AutoCheckout:     true,
		AutoCheckoutTime: "18:00",
	}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	now := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	repo := repositories.NewAttendanceRepository(db)

	open := &models.AttendanceLog{
		UserID:      1,
		Date:        "2025-03-10",
		ClockInTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), open); err != nil {
		t.Fatalf("failed to seed open log: %v", err)
	}

	svc := NewAutoCheckoutService(db)
	svc.now = func() time.Time { return now }
	svc.sweep()

	closed, err := repo.GetByID(context.Background(), open.ID)
	if err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if !closed.IsClockedOut() {
		t.Fatal("expected sweep to close the open session")
	}
	if closed.TotalHours == nil || *closed.TotalHours != 10 {
		t.Errorf("expected 10 hours, got %v", closed.TotalHours)
	}
}

func TestAutoCheckoutSweepBeforeCutoff(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.AppSettings{
		CompanyName:      "Test",
		OvertimeRate:     1.5,
		AutoCheckout:     true,
		AutoCheckoutTime: "18:00",
	}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	repo := repositories.NewAttendanceRepository(db)
	open := &models.AttendanceLog{
		UserID:      1,
		Date:        "2025-03-10",
		ClockInTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), open); err != nil {
		t.Fatalf("failed to seed open log: %v", err)
	}

	svc := NewAutoCheckoutService(db)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }
	svc.sweep()

	entry, err := repo.GetByID(context.Background(), open.ID)
	if err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if entry.IsClockedOut() {
		t.Error("sweep must not close sessions before the cutoff")
	}
}

func TestAutoCheckoutSweepDisabled(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.AppSettings{
		CompanyName:      "Test",
		OvertimeRate:     1.5,
		AutoCheckout:     false,
		AutoCheckoutTime: "18:00",
	}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	repo := repositories.NewAttendanceRepository(db)
	open := &models.AttendanceLog{
		UserID:      1,
		Date:        "2025-03-10",
		ClockInTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), open); err != nil {
		t.Fatalf("failed to seed open log: %v", err)
	}

	svc := NewAutoCheckoutService(db)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC) }
	svc.sweep()

	entry, err := repo.GetByID(context.Background(), open.ID)
	if err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if entry.IsClockedOut() {
		t.Error("sweep must be a no-op when auto-checkout is disabled")
	}
}
