package repositories

import (
	"context"

	"staffclock/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// payrollRepository implements PayrollRepository interface
type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// GetByID gets a payroll record by ID
func (r *payrollRepository) GetByID(ctx context.Context, id string) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByMonth lists all payroll records for a month with the employee preloaded
func (r *payrollRepository) ListByMonth(ctx context.Context, month string) ([]*models.PayrollRecord, error) {
	var records []*models.PayrollRecord
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("month = ?", month).
		Order("user_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceForMonth deletes every record for the month and inserts the
// new set in one transaction. Regeneration is an idempotent replace:
// either the month ends up with exactly the new records or, on error,
// the previous records survive untouched.
func (r *payrollRepository) ReplaceForMonth(ctx context.Context, month string, records []*models.PayrollRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("month = ?", month).Delete(&models.PayrollRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// MarkPaid flips status generated → paid. The WHERE clause matches
// status 'generated' only, so a record is paid at most once; the row
// count tells the caller whether the flip happened.
func (r *payrollRepository) MarkPaid(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PayrollRecord{}).
		Where("id = ? AND status = ?", id, models.PayrollStatusGenerated).
		Update("status", models.PayrollStatusPaid)
	return res.RowsAffected, res.Error
}
