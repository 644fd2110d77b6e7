package services

import (
	"errors"
	"io"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/importid"
	"ledger/internal/models"
	"ledger/internal/validator"
)

// payPeriodService handles pay-period business logic. It is the same
// machinery as the purchase paths minus the category concern.
type payPeriodService struct {
	db *gorm.DB
}

// NewPayPeriodService creates a new PayPeriodServicer.
func NewPayPeriodService(db *gorm.DB) PayPeriodServicer {
	return &payPeriodService{db: db}
}

// applyPayPeriodFilter chains one bound-parameter clause per set filter
// field. Both bounds are inclusive and select periods falling entirely
// inside the window.
func applyPayPeriodFilter(q *gorm.DB, f PayPeriodFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("start_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("end_date <= ?", *f.EndDate)
	}
	return q
}

// ListPayPeriods retrieves every pay period matching the filter, newest first.
func (s *payPeriodService) ListPayPeriods(filter PayPeriodFilter) ([]models.PayPeriod, error) {
	var periods []models.PayPeriod
	q := applyPayPeriodFilter(s.db.Model(&models.PayPeriod{}), filter)
	if err := q.Order("start_date DESC, id ASC").Find(&periods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return periods, nil
}

// AddPayPeriod inserts a single pay-period entry.
func (s *payPeriodService) AddPayPeriod(record PayPeriodRecord) (*models.PayPeriod, error) {
	if err := validatePayPeriodRecord(record); err != nil {
		return nil, err
	}
	return insertPayPeriod(s.db, record, nil)
}

// AddPayPeriods inserts a sequence of pay-period records as one atomic
// batch, pulling from src strictly one record at a time inside the open
// transaction. Any validation failure or source error discards the entire
// batch and stops pulling.
func (s *payPeriodService) AddPayPeriods(src PayPeriodSource) (*ImportSummary, error) {
	summary := &ImportSummary{ImportID: importid.New()}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for {
			record, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) {
					return err
				}
				return apperrors.Wrap(apperrors.ErrInvalidRecord, err)
			}

			if err := validatePayPeriodRecord(*record); err != nil {
				return err
			}

			if _, err := insertPayPeriod(tx, *record, &summary.ImportID); err != nil {
				return err
			}
			summary.Records++
		}
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// UpdatePayPeriod replaces every field of an existing pay-period entry.
// Not-found is detected from the affected-row count of the update statement.
func (s *payPeriodService) UpdatePayPeriod(payPeriodID uint, record PayPeriodRecord) (*models.PayPeriod, error) {
	if err := validatePayPeriodRecord(record); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.PayPeriod{}).
		Where("id = ?", payPeriodID).
		Updates(map[string]interface{}{
			"start_date":          record.StartDate,
			"end_date":            record.EndDate,
			"earnings":            record.Earnings,
			"pre_tax_deductions":  record.PreTaxDeductions,
			"taxes":               record.Taxes,
			"post_tax_deductions": record.PostTaxDeductions,
		})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrPayPeriodNotFound
	}

	var result models.PayPeriod
	if err := s.db.First(&result, payPeriodID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// DeletePayPeriod deletes a pay-period entry by ID.
func (s *payPeriodService) DeletePayPeriod(payPeriodID uint) error {
	res := s.db.Delete(&models.PayPeriod{}, payPeriodID)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPayPeriodNotFound
	}
	return nil
}

func validatePayPeriodRecord(record PayPeriodRecord) error {
	if err := validator.Struct(record); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidRecord, err)
	}
	return nil
}

func insertPayPeriod(tx *gorm.DB, record PayPeriodRecord, importID *string) (*models.PayPeriod, error) {
	period := &models.PayPeriod{
		StartDate:         record.StartDate,
		EndDate:           record.EndDate,
		Earnings:          record.Earnings,
		PreTaxDeductions:  record.PreTaxDeductions,
		Taxes:             record.Taxes,
		PostTaxDeductions: record.PostTaxDeductions,
		ImportID:          importID,
	}
	if err := tx.Create(period).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return period, nil
}
