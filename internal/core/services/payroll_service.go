package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"
	"staffclock/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthLayout is the payroll month format (YYYY-MM)
const MonthLayout = "2006-01"

// DefaultOvertimeRate applies when no company settings row exists
const DefaultOvertimeRate = 1.5

// regularHoursPerDay is the daily threshold above which hours count as
// overtime. The split is per day, not per month: a 10-hour day is
// always 8 regular + 2 overtime regardless of the rest of the month.
var regularHoursPerDay = decimal.NewFromInt(8)

// PayrollService turns a month of attendance logs into payroll records
type PayrollService struct {
	payrollRepo    repositories.PayrollRepository
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository
	settingsRepo   repositories.SettingsRepository
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	payrollRepo repositories.PayrollRepository,
	attendanceRepo repositories.AttendanceRepository,
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
) *PayrollService {
	return &PayrollService{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		settingsRepo:   settingsRepo,
	}
}

// Generate computes payroll for every employee for the given month and
// replaces any previously generated records for that month. Running it
// twice over unchanged attendance data and settings yields the same
// set of records (new row ids aside). Concurrent generation for the
// same month is not supported and must be serialized by the caller.
func (s *PayrollService) Generate(ctx context.Context, month string) ([]*models.PayrollRecord, error) {
	monthStart, err := time.Parse(MonthLayout, month)
	if err != nil {
		return nil, domain.ErrInvalidMonth
	}

	overtimeRate := s.overtimeRate(ctx)

	employees, err := s.userRepo.AllByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, err
	}

	// Month window, inclusive. The zeroth day of the next month is the
	// last day of this one, which handles 28/29/30/31 and leap years.
	startDate := monthStart.Format(DateLayout)
	lastDay := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	endDate := fmt.Sprintf("%s-%02d", month, lastDay)

	logs, err := s.attendanceRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Group logs per employee
	logsByUser := make(map[uint][]*models.AttendanceLog, len(employees))
	for _, l := range logs {
		logsByUser[l.UserID] = append(logsByUser[l.UserID], l)
	}

	// One record per employee, zero-valued when no qualifying logs, so
	// downstream reporting always sees the full employee set.
	records := make([]*models.PayrollRecord, 0, len(employees))
	for _, employee := range employees {
		record := computePayroll(employee, month, logsByUser[employee.ID], overtimeRate)
		records = append(records, record)
	}

	if err := s.payrollRepo.ReplaceForMonth(ctx, month, records); err != nil {
		return nil, err
	}

	log.Printf("💰 Payroll generated for %s: %d records", month, len(records))
	return records, nil
}

// Records lists the payroll records for a month with employees preloaded
func (s *PayrollService) Records(ctx context.Context, month string) ([]*models.PayrollRecord, error) {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return nil, domain.ErrInvalidMonth
	}
	return s.payrollRepo.ListByMonth(ctx, month)
}

// MarkAsPaid transitions a record generated → paid. The transition is
// one-way; paying an already-paid record is an error so double
// disbursement attempts are visible in the audit trail.
func (s *PayrollService) MarkAsPaid(ctx context.Context, recordID string) error {
	rows, err := s.payrollRepo.MarkPaid(ctx, recordID)
	if err != nil {
		return err
	}
	if rows > 0 {
		log.Printf("💰 Payroll record %s marked as paid", recordID)
		return nil
	}

	// Nothing updated: either the record is missing or it was paid already
	record, err := s.payrollRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPayrollNotFound
		}
		return err
	}
	if record.Status == models.PayrollStatusPaid {
		return domain.ErrAlreadyPaid
	}
	return domain.ErrPayrollNotFound
}

// overtimeRate reads the multiplier from company settings, falling
// back to the default when unset
func (s *PayrollService) overtimeRate(ctx context.Context) float64 {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings.OvertimeRate <= 0 {
		return DefaultOvertimeRate
	}
	return settings.OvertimeRate
}

// computePayroll aggregates one employee's logs for one month. Money
// arithmetic runs on decimals so gross pay is exactly regular pay plus
// overtime pay.
func computePayroll(employee *models.User, month string, logs []*models.AttendanceLog, overtimeRate float64) *models.PayrollRecord {
	totalHours := decimal.Zero
	regularHours := decimal.Zero
	overtimeHours := decimal.Zero

	for _, l := range logs {
		if l.TotalHours == nil {
			// Session never closed; nothing to pay for that day
			continue
		}
		hours := decimal.NewFromFloat(*l.TotalHours)
		totalHours = totalHours.Add(hours)

		if hours.GreaterThan(regularHoursPerDay) {
			regularHours = regularHours.Add(regularHoursPerDay)
			overtimeHours = overtimeHours.Add(hours.Sub(regularHoursPerDay))
		} else {
			regularHours = regularHours.Add(hours)
		}
	}

	rate := decimal.NewFromFloat(employee.HourlyRate)
	multiplier := decimal.NewFromFloat(overtimeRate)

	regularPay := regularHours.Mul(rate)
	overtimePay := overtimeHours.Mul(rate).Mul(multiplier)
	grossPay := regularPay.Add(overtimePay)

	return &models.PayrollRecord{
		UserID:        employee.ID,
		Month:         month,
		TotalHours:    totalHours.InexactFloat64(),
		RegularPay:    regularPay.InexactFloat64(),
		OvertimeHours: overtimeHours.InexactFloat64(),
		OvertimePay:   overtimePay.InexactFloat64(),
		GrossPay:      grossPay.InexactFloat64(),
		Status:        models.PayrollStatusGenerated,
	}
}
