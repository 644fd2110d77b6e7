package services

import (
	"time"

	"gorm.io/gorm"

	"ledger/internal/models"
)

// PurchaseFilter holds optional filter parameters for purchase queries.
// All fields are pointers to distinguish "not set" from zero values: an
// empty-string description is a real filter that matches purchases with an
// empty description, not "absent".
type PurchaseFilter struct {
	Description *string
	Category    *string    // category name, resolved against the directory
	StartDate   *time.Time // inclusive
	EndDate     *time.Time // inclusive
}

// PayPeriodFilter holds optional filter parameters for pay-period queries.
// Both bounds are inclusive and select periods falling entirely inside the
// window.
type PayPeriodFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// PurchaseRecord is one candidate purchase for insertion. Category carries
// the category name; nil means the record names no category at all, which
// fails validation on every insert path.
type PurchaseRecord struct {
	Date        time.Time `validate:"required"`
	Description string
	Amount      int64
	Category    *string
}

// PayPeriodRecord is one candidate pay-period entry for insertion.
type PayPeriodRecord struct {
	StartDate         time.Time `validate:"required"`
	EndDate           time.Time `validate:"required,gtefield=StartDate"`
	Earnings          int64
	PreTaxDeductions  int64
	Taxes             int64
	PostTaxDeductions int64
}

// PurchaseSource is a pull-based, possibly lazy sequence of purchase records.
// Next returns io.EOF once the sequence is exhausted; any other error aborts
// the consuming ingest. The bulk ingestor never pulls record k+1 before
// record k has been validated and persisted.
type PurchaseSource interface {
	Next() (*PurchaseRecord, error)
}

// PayPeriodSource is the pay-period equivalent of PurchaseSource.
type PayPeriodSource interface {
	Next() (*PayPeriodRecord, error)
}

// ImportSummary reports a committed bulk ingest.
type ImportSummary struct {
	ImportID          string `json:"import_id"`
	Records           int    `json:"records"`
	CreatedCategories int    `json:"created_categories"`
}

// RankedPurchase pairs the representative purchase for one distinct
// description with the number of times that description occurs in the
// filtered set.
type RankedPurchase struct {
	models.Purchase
	Occurrences int `json:"occurrences"`
}

// CategoryServicer defines the contract for the category directory.
type CategoryServicer interface {
	Exists(name string) (bool, error)
	CreateCategory(name string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	DeleteCategory(categoryID uint) error

	// Tx-scoped operations composed by the purchase insert paths so the
	// existence check and the dependent write share one transaction.
	LookupTx(tx *gorm.DB, name string) (*models.Category, error)
	EnsureTx(tx *gorm.DB, name string) (*models.Category, bool, error)
}

// PurchaseServicer defines the contract for purchase-related business logic.
type PurchaseServicer interface {
	ListPurchases(filter PurchaseFilter) ([]models.Purchase, error)
	MostCommonPurchases(filter PurchaseFilter, limit *int) ([]RankedPurchase, error)
	AddPurchase(record PurchaseRecord) (*models.Purchase, error)
	AddPurchases(src PurchaseSource) (*ImportSummary, error)
	UpdatePurchase(purchaseID uint, record PurchaseRecord) (*models.Purchase, error)
	DeletePurchase(purchaseID uint) error
}

// PayPeriodServicer defines the contract for pay-period business logic.
type PayPeriodServicer interface {
	ListPayPeriods(filter PayPeriodFilter) ([]models.PayPeriod, error)
	AddPayPeriod(record PayPeriodRecord) (*models.PayPeriod, error)
	AddPayPeriods(src PayPeriodSource) (*ImportSummary, error)
	UpdatePayPeriod(payPeriodID uint, record PayPeriodRecord) (*models.PayPeriod, error)
	DeletePayPeriod(payPeriodID uint) error
}
