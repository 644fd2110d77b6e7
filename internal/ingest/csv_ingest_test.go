package ingest

import (
	"strings"
	"testing"

	"ledger/internal/models"
	"ledger/internal/services"
	"ledger/internal/testutil"
)

// These tests drive the bulk ingestor with a real CSV source, so the lazy
// parse-inside-the-transaction path is exercised end to end.

func TestCSVBulkIngest(t *testing.T) {
	t.Run("imports_file_and_auto_creates_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewPurchaseService(db, services.NewCategoryService(db))

		csv := "2024-03-01,Coffee,4.50,Groceries\n" +
			"2024-03-02,Bus ticket,2.75,Transport\n" +
			"2024-03-03,Milk,1.20,Groceries\n"

		summary, err := svc.AddPurchases(NewPurchaseCSV(strings.NewReader(csv)))
		testutil.AssertNoError(t, err)

		if summary.Records != 3 {
			t.Errorf("expected 3 records, got %d", summary.Records)
		}
		if summary.CreatedCategories != 2 {
			t.Errorf("expected 2 auto-created categories, got %d", summary.CreatedCategories)
		}

		var purchases int64
		testutil.AssertNoError(t, db.Model(&models.Purchase{}).Count(&purchases).Error)
		if purchases != 3 {
			t.Errorf("expected 3 purchase rows, got %d", purchases)
		}
	})

	t.Run("malformed_row_rolls_back_whole_file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewPurchaseService(db, services.NewCategoryService(db))

		csv := "2024-03-01,Coffee,4.50,Groceries\n" +
			"2024-03-02,Bus ticket,2.75,Transport\n" +
			"2024-03-03,Milk,not-a-number,Groceries\n"

		_, err := svc.AddPurchases(NewPurchaseCSV(strings.NewReader(csv)))
		testutil.AssertAppError(t, err, "INVALID_RECORD")

		var purchases, categories int64
		testutil.AssertNoError(t, db.Model(&models.Purchase{}).Count(&purchases).Error)
		testutil.AssertNoError(t, db.Model(&models.Category{}).Count(&categories).Error)
		if purchases != 0 || categories != 0 {
			t.Errorf("expected full rollback, got %d purchases and %d categories", purchases, categories)
		}
	})

	t.Run("uncategorized_row_rolls_back_whole_file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewPurchaseService(db, services.NewCategoryService(db))

		csv := "2024-03-01,Coffee,4.50,Groceries\n" +
			"2024-03-02,Mystery,9.99,\n"

		_, err := svc.AddPurchases(NewPurchaseCSV(strings.NewReader(csv)))
		testutil.AssertAppError(t, err, "INVALID_RECORD")

		var purchases int64
		testutil.AssertNoError(t, db.Model(&models.Purchase{}).Count(&purchases).Error)
		if purchases != 0 {
			t.Errorf("expected zero rows, got %d", purchases)
		}
	})

	t.Run("pay_period_file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewPayPeriodService(db)

		csv := "2024-01-01,2024-01-14,2000.00,100.00,400.00,50.00\n" +
			"2024-01-15,2024-01-28,2000.00,100.00,400.00,50.00\n"

		summary, err := svc.AddPayPeriods(NewPayPeriodCSV(strings.NewReader(csv)))
		testutil.AssertNoError(t, err)
		if summary.Records != 2 {
			t.Errorf("expected 2 records, got %d", summary.Records)
		}
	})
}
