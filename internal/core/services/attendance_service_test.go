package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"
	"staffclock/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestAttendanceService(t *testing.T, db *gorm.DB, now time.Time) *AttendanceService {
	t.Helper()

	svc := NewAttendanceService(
		repositories.NewAttendanceRepository(db),
		repositories.NewSettingsRepository(db),
	)
	return svc.WithClock(func() time.Time { return now })
}

func TestClockInCreatesOpenLog(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	entry, err := svc.ClockIn(context.Background(), 1, "https://photos/in.jpg")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected generated log ID")
	}
	if entry.Date != "2025-03-10" {
		t.Errorf("expected date 2025-03-10, got %s", entry.Date)
	}
	if entry.IsClockedOut() {
		t.Error("new log should not be clocked out")
	}
	if entry.ClockInPhotoURL != "https://photos/in.jpg" {
		t.Errorf("unexpected photo URL: %s", entry.ClockInPhotoURL)
	}
}

func TestClockInTwiceSameDay(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	if _, err := svc.ClockIn(context.Background(), 1, "photo"); err != nil {
		t.Fatalf("first ClockIn failed: %v", err)
	}

	_, err := svc.ClockIn(context.Background(), 1, "photo")
	if !errors.Is(err, domain.ErrAlreadyClockedIn) {
		t.Errorf("expected ErrAlreadyClockedIn, got %v", err)
	}
}

func TestClockInAfterClockOutSameDay(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	entry, err := svc.ClockIn(context.Background(), 1, "photo")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	svc.WithClock(func() time.Time { return now.Add(8 * time.Hour) })
	if _, err := svc.ClockOut(context.Background(), 1, entry.ID, "photo"); err != nil {
		t.Fatalf("ClockOut failed: %v", err)
	}

	// One session per day, even after the first one is closed
	_, err = svc.ClockIn(context.Background(), 1, "photo")
	if !errors.Is(err, domain.ErrAlreadyClockedIn) {
		t.Errorf("expected ErrAlreadyClockedIn, got %v", err)
	}
}

func TestClockInDifferentUsersSameDay(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	if _, err := svc.ClockIn(context.Background(), 1, "photo"); err != nil {
		t.Fatalf("ClockIn user 1 failed: %v", err)
	}
	if _, err := svc.ClockIn(context.Background(), 2, "photo"); err != nil {
		t.Fatalf("ClockIn user 2 failed: %v", err)
	}
}

func TestClockOutRecordsHours(t *testing.T) {
	db := setupTestDB(t)
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, clockIn)

	entry, err := svc.ClockIn(context.Background(), 1, "in.jpg")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	svc.WithClock(func() time.Time { return clockIn.Add(8*time.Hour + 30*time.Minute) })

	closed, err := svc.ClockOut(context.Background(), 1, entry.ID, "out.jpg")
	if err != nil {
		t.Fatalf("ClockOut failed: %v", err)
	}

	if closed.TotalHours == nil {
		t.Fatal("expected total hours to be set")
	}
	if math.Abs(*closed.TotalHours-8.5) > 1e-9 {
		t.Errorf("expected 8.5 hours, got %v", *closed.TotalHours)
	}
	if !closed.IsClockedOut() {
		t.Error("log should be clocked out")
	}
	if closed.ClockOutPhotoURL != "out.jpg" {
		t.Errorf("unexpected clock-out photo: %s", closed.ClockOutPhotoURL)
	}
}

func TestClockOutTwice(t *testing.T) {
	db := setupTestDB(t)
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, clockIn)

	entry, err := svc.ClockIn(context.Background(), 1, "photo")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	svc.WithClock(func() time.Time { return clockIn.Add(8 * time.Hour) })
	if _, err := svc.ClockOut(context.Background(), 1, entry.ID, "photo"); err != nil {
		t.Fatalf("first ClockOut failed: %v", err)
	}

	// Second clock-out must not overwrite the stored hours
	svc.WithClock(func() time.Time { return clockIn.Add(12 * time.Hour) })
	_, err = svc.ClockOut(context.Background(), 1, entry.ID, "photo")
	if !errors.Is(err, domain.ErrAlreadyClockedOut) {
		t.Errorf("expected ErrAlreadyClockedOut, got %v", err)
	}

	stored, err := repositories.NewAttendanceRepository(db).GetByID(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if stored.TotalHours == nil || math.Abs(*stored.TotalHours-8) > 1e-9 {
		t.Errorf("stored hours changed, got %v", stored.TotalHours)
	}
}

func TestClockOutUnknownLog(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAttendanceService(t, db, time.Now())

	_, err := svc.ClockOut(context.Background(), 1, "missing-id", "photo")
	if !errors.Is(err, domain.ErrAttendanceLogNotFound) {
		t.Errorf("expected ErrAttendanceLogNotFound, got %v", err)
	}
}

func TestClockOutAnotherUsersLog(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	entry, err := svc.ClockIn(context.Background(), 1, "photo")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	_, err = svc.ClockOut(context.Background(), 2, entry.ID, "photo")
	if !errors.Is(err, domain.ErrAttendanceLogNotFound) {
		t.Errorf("expected ErrAttendanceLogNotFound, got %v", err)
	}
}

func TestClockOutBeforeClockIn(t *testing.T) {
	db := setupTestDB(t)
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, clockIn)

	entry, err := svc.ClockIn(context.Background(), 1, "photo")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	// Clock moved backwards
	svc.WithClock(func() time.Time { return clockIn.Add(-1 * time.Hour) })
	_, err = svc.ClockOut(context.Background(), 1, entry.ID, "photo")
	if !errors.Is(err, domain.ErrClockSkew) {
		t.Errorf("expected ErrClockSkew, got %v", err)
	}

	// The log stays open and a later clock-out still works
	svc.WithClock(func() time.Time { return clockIn.Add(2 * time.Hour) })
	if _, err := svc.ClockOut(context.Background(), 1, entry.ID, "photo"); err != nil {
		t.Errorf("clock-out after skew failed: %v", err)
	}
}

func TestClockInPhotoRequired(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	settings := &models.AppSettings{CompanyName: "Test", OvertimeRate: 1.5, RequirePhoto: true}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create settings: %v", err)
	}

	_, err := svc.ClockIn(context.Background(), 1, "")
	if !errors.Is(err, ErrPhotoRequired) {
		t.Errorf("expected ErrPhotoRequired, got %v", err)
	}

	// With the requirement off, no photo is fine
	if err := db.Model(settings).Update("require_photo", false).Error; err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}
	if _, err := svc.ClockIn(context.Background(), 1, ""); err != nil {
		t.Errorf("ClockIn without photo failed: %v", err)
	}
}

func TestTodayStatus(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(t, db, now)

	status, err := svc.TodayStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("TodayStatus failed: %v", err)
	}
	if status != nil {
		t.Error("expected no log before clock-in")
	}

	entry, err := svc.ClockIn(context.Background(), 1, "photo")
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	status, err = svc.TodayStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("TodayStatus failed: %v", err)
	}
	if status == nil || status.ID != entry.ID {
		t.Error("expected today's log after clock-in")
	}
}

func TestListMyLogs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAttendanceService(t, db, time.Now())
	repo := repositories.NewAttendanceRepository(db)

	for day := 1; day <= 15; day++ {
		entry := &models.AttendanceLog{
			UserID:      1,
			Date:        time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC).Format(DateLayout),
			ClockInTime: time.Date(2025, 3, day, 9, 0, 0, 0, time.UTC),
		}
		if err := repo.Create(context.Background(), entry); err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	result, err := svc.ListMyLogs(context.Background(), 1, &ListMyLogsInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListMyLogs failed: %v", err)
	}

	if result.Total != 15 {
		t.Errorf("expected total 15, got %d", result.Total)
	}
	if len(result.Logs) != 10 {
		t.Errorf("expected 10 logs on page 1, got %d", len(result.Logs))
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", result.TotalPages)
	}
	// Newest first
	if result.Logs[0].Date != "2025-03-15" {
		t.Errorf("expected newest log first, got %s", result.Logs[0].Date)
	}
}

func TestListAllLogsInvalidDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAttendanceService(t, db, time.Now())

	_, _, err := svc.ListAllLogs(context.Background(), "not-a-date", 0, 10)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
