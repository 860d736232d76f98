package repositories

import (
	"context"
	"time"

	"staffclock/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create inserts a new attendance log. A second log for the same
// (user_id, date) violates the composite unique index and comes back
// as gorm.ErrDuplicatedKey — callers translate that into the
// duplicate-session error. No read-before-write check here.
func (r *attendanceRepository) Create(ctx context.Context, log *models.AttendanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByID gets an attendance log by ID
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*models.AttendanceLog, error) {
	var log models.AttendanceLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetByUserAndDate gets the log for one user on one calendar date
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID uint, date string) (*models.AttendanceLog, error) {
	var log models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Close fills the clock-out fields of a still-open log. The WHERE
// clause matches clock_out_time IS NULL so two concurrent clock-outs
// cannot both succeed; the returned row count tells the caller whether
// this call won. A closed log is never mutated again.
func (r *attendanceRepository) Close(ctx context.Context, id string, clockOut time.Time, photoURL string, totalHours float64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.AttendanceLog{}).
		Where("id = ? AND clock_out_time IS NULL", id).
		Updates(map[string]interface{}{
			"clock_out_time":      clockOut,
			"clock_out_photo_url": photoURL,
			"total_hours":         totalHours,
		})
	return res.RowsAffected, res.Error
}

// ListByUser lists one user's logs, newest first, paginated
func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AttendanceLog, int64, error) {
	var logs []*models.AttendanceLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceLog{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("date DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListAll lists logs for all users with the employee preloaded,
// optionally filtered to one date (admin gallery)
func (r *attendanceRepository) ListAll(ctx context.Context, date string, offset, limit int) ([]*models.AttendanceLog, int64, error) {
	var logs []*models.AttendanceLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceLog{})
	if date != "" {
		query = query.Where("date = ?", date)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("date DESC, clock_in_time DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListByDateRange lists all logs with date in [startDate, endDate]
// inclusive. Dates are YYYY-MM-DD so string comparison is safe.
func (r *attendanceRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*models.AttendanceLog, error) {
	var logs []*models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListOpenByDate lists logs on the given date that are not clocked out yet
func (r *attendanceRepository) ListOpenByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error) {
	var logs []*models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("date = ? AND clock_out_time IS NULL", date).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// SumHoursByUser sums closed-log hours for one user over a date range
// and counts the days involved (employee dashboard)
func (r *attendanceRepository) SumHoursByUser(ctx context.Context, userID uint, startDate, endDate string) (float64, int64, error) {
	var sum float64
	var count int64

	query := r.db.WithContext(ctx).
		Model(&models.AttendanceLog{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate)

	if err := query.Count(&count).Error; err != nil {
		return 0, 0, err
	}

	err := query.Select("COALESCE(SUM(total_hours), 0)").Scan(&sum).Error
	if err != nil {
		return 0, 0, err
	}

	return sum, count, nil
}
