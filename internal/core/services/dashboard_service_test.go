package services

import (
	"context"
	"testing"
	"time"
)

func TestAdminDashboardCounts(t *testing.T) {
	db := setupTestDB(t)

	present := seedEmployee(t, db, "present", 20)
	stillIn := seedEmployee(t, db, "still-in", 20)
	seedEmployee(t, db, "absent", 20)

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	today := now.Format(DateLayout)

	seedClosedLog(t, db, present.ID, today, 8)

	openRepo := newTestAttendanceService(t, db, now)
	if _, err := openRepo.ClockIn(context.Background(), stillIn.ID, "photo"); err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}

	svc := NewDashboardService(db)
	svc.now = func() time.Time { return now }

	data, err := svc.GetAdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetAdminDashboard failed: %v", err)
	}

	if data.TotalEmployees != 3 {
		t.Errorf("expected 3 employees, got %d", data.TotalEmployees)
	}
	if data.PresentToday != 2 {
		t.Errorf("expected 2 present, got %d", data.PresentToday)
	}
	if data.AbsentToday != 1 {
		t.Errorf("expected 1 absent, got %d", data.AbsentToday)
	}
	if data.ClockedInNow != 1 {
		t.Errorf("expected 1 clocked in, got %d", data.ClockedInNow)
	}
	if len(data.RecentLogs) != 2 {
		t.Errorf("expected 2 recent logs, got %d", len(data.RecentLogs))
	}
}

func TestEmployeeDashboardTotals(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db, "worker", 20)

	// Wednesday 2025-03-12; the week starts Monday 2025-03-10
	now := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

	seedClosedLog(t, db, emp.ID, "2025-03-03", 8) // this month, previous week
	seedClosedLog(t, db, emp.ID, "2025-03-10", 8) // this week
	seedClosedLog(t, db, emp.ID, "2025-03-12", 6) // today

	svc := NewDashboardService(db)
	svc.now = func() time.Time { return now }

	data, err := svc.GetEmployeeDashboard(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("GetEmployeeDashboard failed: %v", err)
	}

	if data.ClockedIn {
		t.Error("employee already clocked out today")
	}
	if data.TotalHoursToday == nil || *data.TotalHoursToday != 6 {
		t.Errorf("expected 6 hours today, got %v", data.TotalHoursToday)
	}
	if data.HoursThisWeek != 14 {
		t.Errorf("expected 14 hours this week, got %v", data.HoursThisWeek)
	}
	if data.HoursThisMonth != 22 {
		t.Errorf("expected 22 hours this month, got %v", data.HoursThisMonth)
	}
	if data.DaysThisMonth != 3 {
		t.Errorf("expected 3 days this month, got %d", data.DaysThisMonth)
	}
}
