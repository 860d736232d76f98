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

	"gorm.io/gorm"
)

func newTestPayrollService(db *gorm.DB) *PayrollService {
	return NewPayrollService(
		repositories.NewPayrollRepository(db),
		repositories.NewAttendanceRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewSettingsRepository(db),
	)
}

func seedEmployee(t *testing.T, db *gorm.DB, name string, hourlyRate float64) *models.User {
	t.Helper()

	user := &models.User{
		FullName:   name,
		Email:      name + "@staffclock.io",
		Password:   "hashed",
		Role:       models.RoleEmployee,
		HourlyRate: hourlyRate,
		IsActive:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return user
}

func seedClosedLog(t *testing.T, db *gorm.DB, userID uint, date string, hours float64) {
	t.Helper()

	clockIn := mustParseDate(t, date).Add(9 * time.Hour)
	clockOut := clockIn.Add(time.Duration(hours * float64(time.Hour)))
	entry := &models.AttendanceLog{
		UserID:       userID,
		Date:         date,
		ClockInTime:  clockIn,
		ClockOutTime: &clockOut,
		TotalHours:   &hours,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}
}

func mustParseDate(t *testing.T, date string) time.Time {
	t.Helper()

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		t.Fatalf("bad test date %s: %v", date, err)
	}
	return d
}

func findRecord(t *testing.T, records []*models.PayrollRecord, userID uint) *models.PayrollRecord {
	t.Helper()

	for _, r := range records {
		if r.UserID == userID {
			return r
		}
	}
	t.Fatalf("no payroll record for user %d", userID)
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestGenerateInvalidMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	for _, month := range []string{"2025-13", "202503", "March 2025", ""} {
		if _, err := svc.Generate(context.Background(), month); !errors.Is(err, domain.ErrInvalidMonth) {
			t.Errorf("month %q: expected ErrInvalidMonth, got %v", month, err)
		}
	}
}

func TestGenerateRegularAndOvertime(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	// 10-hour days: 8 regular + 2 overtime each
	emp := seedEmployee(t, db, "alice", 10)
	for day := 1; day <= 25; day++ {
		seedClosedLog(t, db, emp.ID, time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC).Format(DateLayout), 10)
	}

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	if !almostEqual(record.TotalHours, 250) {
		t.Errorf("expected 250 total hours, got %v", record.TotalHours)
	}
	if !almostEqual(record.OvertimeHours, 50) {
		t.Errorf("expected 50 overtime hours, got %v", record.OvertimeHours)
	}
	// 200h * 10 = 2000, 50h * 10 * 1.5 = 750
	if !almostEqual(record.RegularPay, 2000) {
		t.Errorf("expected regular pay 2000, got %v", record.RegularPay)
	}
	if !almostEqual(record.OvertimePay, 750) {
		t.Errorf("expected overtime pay 750, got %v", record.OvertimePay)
	}
	if !almostEqual(record.GrossPay, 2750) {
		t.Errorf("expected gross pay 2750, got %v", record.GrossPay)
	}
	if record.Status != models.PayrollStatusGenerated {
		t.Errorf("expected status generated, got %s", record.Status)
	}
}

func TestGeneratePerDayOvertimeSplit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	// The split is per day: a 6h day earns no overtime credit that a
	// 9h day could consume.
	emp := seedEmployee(t, db, "bob", 30)
	seedClosedLog(t, db, emp.ID, "2025-03-03", 6)
	seedClosedLog(t, db, emp.ID, "2025-03-04", 9)

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	if !almostEqual(record.TotalHours, 15) {
		t.Errorf("expected 15 total hours, got %v", record.TotalHours)
	}
	if !almostEqual(record.OvertimeHours, 1) {
		t.Errorf("expected 1 overtime hour, got %v", record.OvertimeHours)
	}
	// (6+8)h * 30 = 420, 1h * 30 * 1.5 = 45
	if !almostEqual(record.RegularPay, 420) {
		t.Errorf("expected regular pay 420, got %v", record.RegularPay)
	}
	if !almostEqual(record.OvertimePay, 45) {
		t.Errorf("expected overtime pay 45, got %v", record.OvertimePay)
	}
	if !almostEqual(record.GrossPay, 465) {
		t.Errorf("expected gross pay 465, got %v", record.GrossPay)
	}
}

func TestGenerateZeroLogEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	worked := seedEmployee(t, db, "carol", 20)
	idle := seedEmployee(t, db, "dave", 20)
	seedClosedLog(t, db, worked.ID, "2025-03-05", 8)

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected a record per employee, got %d", len(records))
	}

	record := findRecord(t, records, idle.ID)
	if record.TotalHours != 0 || record.GrossPay != 0 || record.OvertimeHours != 0 {
		t.Errorf("expected all-zero record for idle employee, got %+v", record)
	}
}

func TestGenerateSkipsOpenSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	emp := seedEmployee(t, db, "erin", 20)
	seedClosedLog(t, db, emp.ID, "2025-03-05", 8)

	// Never-closed session: no total hours, nothing to pay
	open := &models.AttendanceLog{
		UserID:      emp.ID,
		Date:        "2025-03-06",
		ClockInTime: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC),
	}
	if err := db.Create(open).Error; err != nil {
		t.Fatalf("failed to seed open log: %v", err)
	}

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	if !almostEqual(record.TotalHours, 8) {
		t.Errorf("expected 8 hours from closed log only, got %v", record.TotalHours)
	}
}

func TestGenerateMonthBoundaries(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	emp := seedEmployee(t, db, "frank", 10)
	seedClosedLog(t, db, emp.ID, "2025-02-28", 8) // outside
	seedClosedLog(t, db, emp.ID, "2025-03-01", 8) // first day
	seedClosedLog(t, db, emp.ID, "2025-03-31", 8) // last day
	seedClosedLog(t, db, emp.ID, "2025-04-01", 8) // outside

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	if !almostEqual(record.TotalHours, 16) {
		t.Errorf("expected 16 hours inside the month, got %v", record.TotalHours)
	}
}

func TestGenerateUsesSettingsOvertimeRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	if err := db.Create(&models.AppSettings{CompanyName: "Test", OvertimeRate: 2.0}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	emp := seedEmployee(t, db, "gina", 10)
	seedClosedLog(t, db, emp.ID, "2025-03-03", 10)

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	// 2h overtime * 10 * 2.0 = 40
	if !almostEqual(record.OvertimePay, 40) {
		t.Errorf("expected overtime pay 40 with rate 2.0, got %v", record.OvertimePay)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	emp := seedEmployee(t, db, "hank", 15)
	seedClosedLog(t, db, emp.ID, "2025-03-03", 9)

	first, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	second, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	var count int64
	db.Model(&models.PayrollRecord{}).Where("month = ?", "2025-03").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 record after regeneration, got %d", count)
	}

	a, b := findRecord(t, first, emp.ID), findRecord(t, second, emp.ID)
	if !almostEqual(a.GrossPay, b.GrossPay) || !almostEqual(a.TotalHours, b.TotalHours) {
		t.Errorf("regeneration changed amounts: %+v vs %+v", a, b)
	}
}

func TestGrossPayIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	// Fractional hours and an awkward rate
	emp := seedEmployee(t, db, "iris", 17.33)
	seedClosedLog(t, db, emp.ID, "2025-03-03", 8.75)
	seedClosedLog(t, db, emp.ID, "2025-03-04", 7.2)
	seedClosedLog(t, db, emp.ID, "2025-03-05", 10.1)

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	record := findRecord(t, records, emp.ID)
	if !almostEqual(record.GrossPay, record.RegularPay+record.OvertimePay) {
		t.Errorf("gross pay %v != regular %v + overtime %v",
			record.GrossPay, record.RegularPay, record.OvertimePay)
	}
}

func TestMarkAsPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	emp := seedEmployee(t, db, "jack", 10)
	seedClosedLog(t, db, emp.ID, "2025-03-03", 8)

	records, err := svc.Generate(context.Background(), "2025-03")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	record := findRecord(t, records, emp.ID)

	if err := svc.MarkAsPaid(context.Background(), record.ID); err != nil {
		t.Fatalf("MarkAsPaid failed: %v", err)
	}

	stored, err := repositories.NewPayrollRepository(db).GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if stored.Status != models.PayrollStatusPaid {
		t.Errorf("expected status paid, got %s", stored.Status)
	}

	// Paying twice is a visible error, not a silent no-op
	err = svc.MarkAsPaid(context.Background(), record.ID)
	if !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestMarkAsPaidUnknownRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	err := svc.MarkAsPaid(context.Background(), "missing-id")
	if !errors.Is(err, domain.ErrPayrollNotFound) {
		t.Errorf("expected ErrPayrollNotFound, got %v", err)
	}
}

func TestRecordsInvalidMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPayrollService(db)

	if _, err := svc.Records(context.Background(), "2025/03"); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}
