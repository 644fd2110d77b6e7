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

// purchaseService handles purchase-related business logic.
type purchaseService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewPurchaseService creates a new PurchaseServicer.
func NewPurchaseService(db *gorm.DB, categories CategoryServicer) PurchaseServicer {
	return &purchaseService{
		db:         db,
		categories: categories,
	}
}

// applyPurchaseFilter chains one bound-parameter clause onto q per set
// filter field. Unset fields contribute nothing; with no fields set the
// query is an unconditional scan. The same function backs both ListPurchases
// and the most-common ranking query, so both see an identical predicate for
// identical filters.
func applyPurchaseFilter(q *gorm.DB, f PurchaseFilter) *gorm.DB {
	if f.Description != nil {
		q = q.Where("purchases.description = ?", *f.Description)
	}
	if f.Category != nil {
		q = q.Joins("LEFT JOIN categories ON categories.id = purchases.category_id").
			Where("categories.name = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("purchases.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("purchases.date <= ?", *f.EndDate)
	}
	return q
}

// ListPurchases retrieves every purchase matching the filter, newest first.
func (s *purchaseService) ListPurchases(filter PurchaseFilter) ([]models.Purchase, error) {
	var purchases []models.Purchase
	q := applyPurchaseFilter(s.db.Model(&models.Purchase{}).Select("purchases.*"), filter)
	if err := q.Order("purchases.date DESC, purchases.id ASC").Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return purchases, nil
}

// MostCommonPurchases returns at most one purchase per distinct description
// in the filtered set, ranked by how often the description occurs, most
// frequent first, optionally truncated to the top limit entries. Occurrence
// counts are computed over the filtered set, so a date or category filter
// changes which descriptions rank highest, not merely which rows show.
func (s *purchaseService) MostCommonPurchases(filter PurchaseFilter, limit *int) ([]RankedPurchase, error) {
	var candidates []models.Purchase
	q := applyPurchaseFilter(s.db.Model(&models.Purchase{}).Select("purchases.*"), filter)
	if err := q.Order("purchases.id ASC").Find(&candidates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rankPurchases(candidates, limit), nil
}

// AddPurchase inserts a single purchase. The named category must already
// exist; the existence check and the insert share one transaction so a
// concurrent category deletion cannot slip in between them.
func (s *purchaseService) AddPurchase(record PurchaseRecord) (*models.Purchase, error) {
	if err := validatePurchaseRecord(record); err != nil {
		return nil, err
	}

	var result *models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := s.categories.LookupTx(tx, *record.Category)
		if err != nil {
			return err
		}

		var txErr error
		result, txErr = insertPurchase(tx, record, category.ID, nil)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddPurchases inserts a sequence of purchase records as one atomic batch.
// Records are pulled from src strictly one at a time: the next record is not
// requested until the current one is validated and persisted, so lazily
// produced sources (e.g. a CSV file still being parsed) are consumed inside
// the open transaction. A category named by a record but absent from the
// directory is created automatically within the same transaction. Any
// validation failure or source error discards the entire batch and stops
// pulling.
func (s *purchaseService) AddPurchases(src PurchaseSource) (*ImportSummary, error) {
	summary := &ImportSummary{ImportID: importid.New()}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for {
			record, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				// A failing source is a validation failure at this position.
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) {
					return err
				}
				return apperrors.Wrap(apperrors.ErrInvalidRecord, err)
			}

			if err := validatePurchaseRecord(*record); err != nil {
				return err
			}

			category, created, err := s.categories.EnsureTx(tx, *record.Category)
			if err != nil {
				return err
			}
			if created {
				summary.CreatedCategories++
			}

			if _, err := insertPurchase(tx, *record, category.ID, &summary.ImportID); err != nil {
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

// UpdatePurchase replaces the date, description, amount, and category of an
// existing purchase. Not-found is detected from the affected-row count of
// the update statement itself, never a prior existence read, so it cannot
// race a concurrent delete.
func (s *purchaseService) UpdatePurchase(purchaseID uint, record PurchaseRecord) (*models.Purchase, error) {
	if err := validatePurchaseRecord(record); err != nil {
		return nil, err
	}

	var result models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := s.categories.LookupTx(tx, *record.Category)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Purchase{}).
			Where("id = ?", purchaseID).
			Updates(map[string]interface{}{
				"date":        record.Date,
				"description": record.Description,
				"amount":      record.Amount,
				"category_id": category.ID,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrPurchaseNotFound
		}

		if err := tx.First(&result, purchaseID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePurchase deletes a purchase by ID.
func (s *purchaseService) DeletePurchase(purchaseID uint) error {
	res := s.db.Delete(&models.Purchase{}, purchaseID)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPurchaseNotFound
	}
	return nil
}

// validatePurchaseRecord rejects records that could never be inserted on any
// path: a missing category name or a zero date.
func validatePurchaseRecord(record PurchaseRecord) error {
	if record.Category == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "purchase record names no category")
	}
	if err := validator.Struct(record); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidRecord, err)
	}
	return nil
}

// insertPurchase writes one purchase row within the given transaction.
func insertPurchase(tx *gorm.DB, record PurchaseRecord, categoryID uint, importID *string) (*models.Purchase, error) {
	purchase := &models.Purchase{
		Date:        record.Date,
		Description: record.Description,
		Amount:      record.Amount,
		CategoryID:  &categoryID,
		ImportID:    importID,
	}
	if err := tx.Create(purchase).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return purchase, nil
}
