package services

import (
	"context"
	"time"

	"staffclock/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService handles dashboard statistics
type DashboardService struct {
	db *gorm.DB

	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalEmployees int64   `json:"total_employees"`
	PresentToday   int64   `json:"present_today"`
	AbsentToday    int64   `json:"absent_today"`
	ClockedInNow   int64   `json:"clocked_in_now"`
	AverageHours   float64 `json:"average_hours"`

	RecentLogs []AttendanceSummary `json:"recent_logs"`
}

// AttendanceSummary represents one row of the recent-activity table
type AttendanceSummary struct {
	LogID        string     `json:"log_id"`
	EmployeeName string     `json:"employee_name"`
	Date         string     `json:"date"`
	ClockInTime  time.Time  `json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time"`
	TotalHours   *float64   `json:"total_hours"`
}

// GetAdminDashboard returns company-wide attendance statistics
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	today := s.now().Format(DateLayout)

	s.db.WithContext(ctx).Table("users").
		Where("role = ? AND deleted_at IS NULL", models.RoleEmployee).
		Count(&data.TotalEmployees)

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("date = ?", today).
		Count(&data.PresentToday)

	data.AbsentToday = data.TotalEmployees - data.PresentToday
	if data.AbsentToday < 0 {
		data.AbsentToday = 0
	}

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("date = ? AND clock_out_time IS NULL", today).
		Count(&data.ClockedInNow)

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("date = ? AND total_hours IS NOT NULL", today).
		Select("COALESCE(AVG(total_hours), 0)").
		Scan(&data.AverageHours)

	// Recent activity
	var recent []struct {
		LogID        string
		EmployeeName string
		Date         string
		ClockInTime  time.Time
		ClockOutTime *time.Time
		TotalHours   *float64
	}
	s.db.WithContext(ctx).Table("attendance_logs").
		Select("attendance_logs.id as log_id, users.full_name as employee_name, attendance_logs.date, attendance_logs.clock_in_time, attendance_logs.clock_out_time, attendance_logs.total_hours").
		Joins("LEFT JOIN users ON attendance_logs.user_id = users.id").
		Order("attendance_logs.date DESC, attendance_logs.clock_in_time DESC").
		Limit(10).
		Scan(&recent)

	data.RecentLogs = make([]AttendanceSummary, len(recent))
	for i, r := range recent {
		data.RecentLogs[i] = AttendanceSummary{
			LogID:        r.LogID,
			EmployeeName: r.EmployeeName,
			Date:         r.Date,
			ClockInTime:  r.ClockInTime,
			ClockOutTime: r.ClockOutTime,
			TotalHours:   r.TotalHours,
		}
	}

	return data, nil
}

// ============================================================
// Employee Dashboard
// ============================================================

// EmployeeDashboardData represents one employee's dashboard data
type EmployeeDashboardData struct {
	ClockedIn       bool       `json:"clocked_in"`
	ClockInTime     *time.Time `json:"clock_in_time"`
	ClockOutTime    *time.Time `json:"clock_out_time"`
	TotalHoursToday *float64   `json:"total_hours_today"`

	HoursThisWeek  float64 `json:"hours_this_week"`
	HoursThisMonth float64 `json:"hours_this_month"`
	DaysThisMonth  int64   `json:"days_this_month"`
}

// GetEmployeeDashboard returns today's status plus week/month totals
func (s *DashboardService) GetEmployeeDashboard(ctx context.Context, userID uint) (*EmployeeDashboardData, error) {
	data := &EmployeeDashboardData{}
	now := s.now()
	today := now.Format(DateLayout)

	// Today's log, if any
	var todayLog models.AttendanceLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, today).
		First(&todayLog).Error
	if err == nil {
		data.ClockedIn = !todayLog.IsClockedOut()
		clockIn := todayLog.ClockInTime
		data.ClockInTime = &clockIn
		data.ClockOutTime = todayLog.ClockOutTime
		data.TotalHoursToday = todayLog.TotalHours
	}

	// Week starts on Monday
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1)).Format(DateLayout)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(DateLayout)

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, weekStart, today).
		Select("COALESCE(SUM(total_hours), 0)").
		Scan(&data.HoursThisWeek)

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, monthStart, today).
		Select("COALESCE(SUM(total_hours), 0)").
		Scan(&data.HoursThisMonth)

	s.db.WithContext(ctx).Table("attendance_logs").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, monthStart, today).
		Count(&data.DaysThisMonth)

	return data, nil
}
