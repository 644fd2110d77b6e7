package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledger/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC midnight timestamp, the shape purchase dates take in
// fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPurchase creates a purchase with the given description, date,
// and category. Pass nil for categoryID to create an uncategorized purchase.
func CreateTestPurchase(t *testing.T, db *gorm.DB, description string, date time.Time, categoryID *uint) *models.Purchase {
	t.Helper()
	return CreateTestPurchaseWithAmount(t, db, description, date, categoryID, 1000)
}

// CreateTestPurchaseWithAmount creates a purchase with the given amount (in cents).
func CreateTestPurchaseWithAmount(t *testing.T, db *gorm.DB, description string, date time.Time, categoryID *uint, amount int64) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		Date:        date,
		Description: description,
		Amount:      amount,
		CategoryID:  categoryID,
	}
	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("failed to create test purchase: %v", err)
	}
	return purchase
}

// CreateTestPayPeriod creates a two-week pay period starting at the given date.
func CreateTestPayPeriod(t *testing.T, db *gorm.DB, start time.Time, earnings int64) *models.PayPeriod {
	t.Helper()

	period := &models.PayPeriod{
		StartDate:         start,
		EndDate:           start.AddDate(0, 0, 13),
		Earnings:          earnings,
		PreTaxDeductions:  0,
		Taxes:             0,
		PostTaxDeductions: 0,
	}
	if err := db.Create(period).Error; err != nil {
		t.Fatalf("failed to create test pay period: %v", err)
	}
	return period
}
