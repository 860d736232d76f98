package repositories

import (
	"context"
	"time"

	"staffclock/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListByRole(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
	AllByRole(ctx context.Context, role string) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AttendanceRepository defines attendance log repository interface.
// Create relies on the (user_id, date) unique index for duplicate
// detection; Close is a conditional update matching open logs only.
type AttendanceRepository interface {
	Create(ctx context.Context, log *models.AttendanceLog) error
	GetByID(ctx context.Context, id string) (*models.AttendanceLog, error)
	GetByUserAndDate(ctx context.Context, userID uint, date string) (*models.AttendanceLog, error)
	Close(ctx context.Context, id string, clockOut time.Time, photoURL string, totalHours float64) (int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AttendanceLog, int64, error)
	ListAll(ctx context.Context, date string, offset, limit int) ([]*models.AttendanceLog, int64, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]*models.AttendanceLog, error)
	ListOpenByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error)
	SumHoursByUser(ctx context.Context, userID uint, startDate, endDate string) (float64, int64, error)
}

// PayrollRepository defines payroll record repository interface
type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (*models.PayrollRecord, error)
	ListByMonth(ctx context.Context, month string) ([]*models.PayrollRecord, error)
	ReplaceForMonth(ctx context.Context, month string, records []*models.PayrollRecord) error
	MarkPaid(ctx context.Context, id string) (int64, error)
}

// SettingsRepository defines company settings repository interface
type SettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, settings *models.AppSettings) error
}
