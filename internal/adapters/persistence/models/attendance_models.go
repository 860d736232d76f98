package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Attendance & Payroll Tables
// ============================================================

// Payroll statuses
const (
	PayrollStatusGenerated = "generated"
	PayrollStatusPaid      = "paid"
)

// AttendanceLog represents one employee's attendance for one calendar date.
// The composite unique index on (user_id, date) is what makes concurrent
// duplicate clock-ins safe: the INSERT itself is the check.
type AttendanceLog struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	Date             string     `gorm:"type:char(10);not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	ClockInTime      time.Time  `gorm:"not null" json:"clock_in_time"`
	ClockInPhotoURL  string     `gorm:"size:500" json:"clock_in_photo_url"`
	ClockOutTime     *time.Time `json:"clock_out_time"`
	ClockOutPhotoURL string     `gorm:"size:500" json:"clock_out_photo_url"`
	TotalHours       *float64   `gorm:"type:decimal(7,4)" json:"total_hours"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

// BeforeCreate assigns a UUID primary key
func (l *AttendanceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// IsClockedOut returns true once the session is closed
func (l *AttendanceLog) IsClockedOut() bool {
	return l.ClockOutTime != nil
}

// PayrollRecord represents one employee's payroll for one month (YYYY-MM)
type PayrollRecord struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_payroll_user_month" json:"user_id"`
	Month         string    `gorm:"type:char(7);not null;uniqueIndex:idx_payroll_user_month;index" json:"month"`
	TotalHours    float64   `gorm:"type:decimal(8,4);not null" json:"total_hours"`
	RegularPay    float64   `gorm:"type:decimal(12,2);not null" json:"regular_pay"`
	OvertimeHours float64   `gorm:"type:decimal(8,4);not null" json:"overtime_hours"`
	OvertimePay   float64   `gorm:"type:decimal(12,2);not null" json:"overtime_pay"`
	GrossPay      float64   `gorm:"type:decimal(12,2);not null" json:"gross_pay"`
	Status        string    `gorm:"size:20;not null;default:'generated'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// BeforeCreate assigns a UUID primary key
func (p *PayrollRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Company Settings (single row)
// ============================================================

// AppSettings represents app_settings table
type AppSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CompanyName          string    `gorm:"size:100" json:"company_name"`
	WorkingHoursStart    string    `gorm:"size:5" json:"working_hours_start"`
	WorkingHoursEnd      string    `gorm:"size:5" json:"working_hours_end"`
	OvertimeRate         float64   `gorm:"type:decimal(4,2);default:1.5" json:"overtime_rate"`
	AutoCheckout         bool      `gorm:"default:false" json:"auto_checkout"`
	AutoCheckoutTime     string    `gorm:"size:5" json:"auto_checkout_time"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	RequirePhoto         bool      `gorm:"default:true" json:"require_photo"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSettings) TableName() string {
	return "app_settings"
}
