package services

import (
	"context"
	"errors"
	"log"
	"time"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"
	"staffclock/internal/core/domain"

	"gorm.io/gorm"
)

// Attendance service errors
var (
	ErrPhotoRequired = errors.New("a verification photo is required")
)

// DateLayout is the calendar-date format used across attendance and payroll
const DateLayout = "2006-01-02"

// AttendanceService handles the daily clock-in / clock-out lifecycle.
// Each (user, date) pair moves through NoSession → Open → Closed and
// a closed log is terminal.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	settingsRepo   repositories.SettingsRepository

	// now is injectable so tests can drive the clock
	now func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	settingsRepo repositories.SettingsRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		now:            time.Now,
	}
}

// WithClock overrides the time source (tests)
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

// ClockIn opens today's attendance session for the user. At most one
// log exists per (user, date): the insert hits the composite unique
// index, so concurrent duplicate calls cannot both succeed, whether
// the existing log is still open or already closed.
func (s *AttendanceService) ClockIn(ctx context.Context, userID uint, photoURL string) (*models.AttendanceLog, error) {
	if err := s.checkPhotoRequired(ctx, photoURL); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &models.AttendanceLog{
		UserID:          userID,
		Date:            now.Format(DateLayout),
		ClockInTime:     now,
		ClockInPhotoURL: photoURL,
	}

	if err := s.attendanceRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyClockedIn
		}
		return nil, err
	}

	log.Printf("🕐 Clock-in: user %d on %s", userID, entry.Date)
	return entry, nil
}

// ClockOut closes an open attendance session and records total hours
// worked as (now - clockInTime) in fractional hours. The update only
// matches logs whose clock_out_time is still NULL, so a second
// clock-out never silently overwrites the stored hours. Logs belonging
// to other users look like they don't exist.
func (s *AttendanceService) ClockOut(ctx context.Context, userID uint, logID string, photoURL string) (*models.AttendanceLog, error) {
	entry, err := s.attendanceRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceLogNotFound
		}
		return nil, err
	}

	if entry.UserID != userID {
		return nil, domain.ErrAttendanceLogNotFound
	}

	if entry.IsClockedOut() {
		return nil, domain.ErrAlreadyClockedOut
	}

	if err := s.checkPhotoRequired(ctx, photoURL); err != nil {
		return nil, err
	}

	now := s.now()
	totalHours := now.Sub(entry.ClockInTime).Hours()
	if totalHours < 0 {
		// Clock anomaly: the stored clock-in is in our future
		return nil, domain.ErrClockSkew
	}

	rows, err := s.attendanceRepo.Close(ctx, logID, now, photoURL, totalHours)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race against a concurrent clock-out
		return nil, domain.ErrAlreadyClockedOut
	}

	entry.ClockOutTime = &now
	entry.ClockOutPhotoURL = photoURL
	entry.TotalHours = &totalHours

	log.Printf("🕐 Clock-out: user %d on %s (%.2fh)", entry.UserID, entry.Date, totalHours)
	return entry, nil
}

// TodayStatus returns today's log for the user, or nil if the user has
// not clocked in yet. Read-only.
func (s *AttendanceService) TodayStatus(ctx context.Context, userID uint) (*models.AttendanceLog, error) {
	entry, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, s.now().Format(DateLayout))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// ListMyLogsInput represents attendance history input
type ListMyLogsInput struct {
	Page  int
	Limit int
}

// ListMyLogsOutput represents attendance history output
type ListMyLogsOutput struct {
	Logs       []*models.AttendanceLog `json:"logs"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

// ListMyLogs lists one user's attendance history, newest first
func (s *AttendanceService) ListMyLogs(ctx context.Context, userID uint, input *ListMyLogsInput) (*ListMyLogsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	logs, total, err := s.attendanceRepo.ListByUser(ctx, userID, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListMyLogsOutput{
		Logs:       logs,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// ListAllLogs lists logs for all employees with the employee preloaded,
// optionally filtered by date (admin gallery view)
func (s *AttendanceService) ListAllLogs(ctx context.Context, date string, offset, limit int) ([]*models.AttendanceLog, int64, error) {
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
	}
	return s.attendanceRepo.ListAll(ctx, date, offset, limit)
}

// checkPhotoRequired rejects an empty photo reference when company
// settings demand photo verification. Missing settings mean no check.
func (s *AttendanceService) checkPhotoRequired(ctx context.Context, photoURL string) error {
	if photoURL != "" {
		return nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if settings.RequirePhoto {
		return ErrPhotoRequired
	}
	return nil
}
