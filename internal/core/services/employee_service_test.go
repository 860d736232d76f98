package services

import (
	"context"
	"errors"
	"testing"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

func newTestEmployeeService(db *gorm.DB) *EmployeeService {
	return NewEmployeeService(repositories.NewUserRepository(db))
}

func TestCreateEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	employee, err := svc.Create(context.Background(), &CreateEmployeeInput{
		FullName:   "Alice Smith",
		Email:      "alice@staffclock.io",
		Password:   "secret123456",
		HourlyRate: 25,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if employee.Role != models.RoleEmployee {
		t.Errorf("expected employee role, got %s", employee.Role)
	}
	if !employee.IsActive {
		t.Error("new employee should be active")
	}
	if employee.HourlyRate != 25 {
		t.Errorf("expected hourly rate 25, got %v", employee.HourlyRate)
	}

	// Password is stored hashed
	var stored models.User
	if err := db.First(&stored, employee.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Password == "secret123456" {
		t.Error("password stored in plain text")
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	input := &CreateEmployeeInput{
		FullName:   "Alice Smith",
		Email:      "alice@staffclock.io",
		Password:   "secret123456",
		HourlyRate: 25,
	}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateEmployeeNegativeRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	_, err := svc.Create(context.Background(), &CreateEmployeeInput{
		FullName:   "Bob",
		Email:      "bob@staffclock.io",
		Password:   "secret123456",
		HourlyRate: -1,
	})
	if !errors.Is(err, ErrInvalidHourlyRate) {
		t.Errorf("expected ErrInvalidHourlyRate, got %v", err)
	}
}

func TestUpdateEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	created, err := svc.Create(context.Background(), &CreateEmployeeInput{
		FullName:   "Alice Smith",
		Email:      "alice@staffclock.io",
		Password:   "secret123456",
		HourlyRate: 25,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newRate := 30.0
	inactive := false
	updated, err := svc.Update(context.Background(), created.ID, &UpdateEmployeeInput{
		HourlyRate: &newRate,
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.HourlyRate != 30 {
		t.Errorf("expected hourly rate 30, got %v", updated.HourlyRate)
	}
	if updated.IsActive {
		t.Error("expected employee to be inactive")
	}
	// Untouched fields survive a partial update
	if updated.FullName != "Alice Smith" {
		t.Errorf("full name changed unexpectedly: %s", updated.FullName)
	}
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 999, &UpdateEmployeeInput{FullName: &name})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestGetEmployeeRejectsAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	admin := &models.User{
		FullName: "Admin",
		Email:    "admin@staffclock.io",
		Password: "hashed",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	// Admin accounts are not employees
	_, err := svc.GetByID(context.Background(), admin.ID)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound for admin, got %v", err)
	}
}

func TestDeleteEmployeeKeepsLogs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	created, err := svc.Create(context.Background(), &CreateEmployeeInput{
		FullName:   "Alice Smith",
		Email:      "alice@staffclock.io",
		Password:   "secret123456",
		HourlyRate: 25,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	seedClosedLog(t, db, created.ID, "2025-03-03", 8)

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = svc.GetByID(context.Background(), created.ID)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected deleted employee to be gone, got %v", err)
	}

	var logCount int64
	db.Model(&models.AttendanceLog{}).Where("user_id = ?", created.ID).Count(&logCount)
	if logCount != 1 {
		t.Errorf("attendance logs should survive employee deletion, got %d", logCount)
	}
}

func TestListEmployeesPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEmployeeService(db)

	for i := 0; i < 12; i++ {
		seedEmployee(t, db, string(rune('a'+i))+"-list", 20)
	}

	result, err := svc.List(context.Background(), &ListEmployeesInput{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if result.Total != 12 {
		t.Errorf("expected total 12, got %d", result.Total)
	}
	if len(result.Employees) != 5 {
		t.Errorf("expected 5 employees on page 2, got %d", len(result.Employees))
	}
	if result.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", result.TotalPages)
	}
}
