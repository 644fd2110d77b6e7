package ingest

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestPurchaseCSV(t *testing.T) {
	t.Run("parses_rows_in_order", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader(
			"2024-03-01,Coffee,4.50,Groceries\n" +
				"2024-03-02,Bus ticket,-2.75,Transport\n",
		))

		first, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Description != "Coffee" || first.Amount != 450 {
			t.Errorf("unexpected first record: %+v", first)
		}
		if first.Category == nil || *first.Category != "Groceries" {
			t.Error("expected Groceries category")
		}
		if !first.Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date: %s", first.Date)
		}

		second, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Amount != -275 {
			t.Errorf("expected -275 cents, got %d", second.Amount)
		}

		if _, err := src.Next(); err != io.EOF {
			t.Errorf("expected io.EOF after last row, got %v", err)
		}
	})

	t.Run("empty_category_yields_nil", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader("2024-03-01,Mystery,1.00,\n"))

		record, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Category != nil {
			t.Errorf("expected nil category, got %q", *record.Category)
		}
	})

	t.Run("malformed_date", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader("01/03/2024,Coffee,4.50,Groceries\n"))
		if _, err := src.Next(); err == nil {
			t.Error("expected error for malformed date")
		}
	})

	t.Run("malformed_amount", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader("2024-03-01,Coffee,four-fifty,Groceries\n"))
		if _, err := src.Next(); err == nil {
			t.Error("expected error for malformed amount")
		}
	})

	t.Run("wrong_field_count", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader("2024-03-01,Coffee,4.50\n"))
		if _, err := src.Next(); err == nil {
			t.Error("expected error for a 3-field row")
		}
	})

	t.Run("good_rows_before_bad_row_still_returned", func(t *testing.T) {
		src := NewPurchaseCSV(strings.NewReader(
			"2024-03-01,Coffee,4.50,Groceries\n" +
				"not-a-date,Coffee,4.50,Groceries\n",
		))

		if _, err := src.Next(); err != nil {
			t.Fatalf("first row should parse: %v", err)
		}
		if _, err := src.Next(); err == nil {
			t.Error("second row should fail")
		}
	})
}

func TestPayPeriodCSV(t *testing.T) {
	t.Run("parses_row", func(t *testing.T) {
		src := NewPayPeriodCSV(strings.NewReader("2024-01-01,2024-01-14,2000.00,100.00,400.00,50.00\n"))

		record, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Earnings != 200000 || record.PreTaxDeductions != 10000 ||
			record.Taxes != 40000 || record.PostTaxDeductions != 5000 {
			t.Errorf("unexpected amounts: %+v", record)
		}
		if !record.EndDate.Equal(time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected end date: %s", record.EndDate)
		}

		if _, err := src.Next(); err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})

	t.Run("malformed_amount", func(t *testing.T) {
		src := NewPayPeriodCSV(strings.NewReader("2024-01-01,2024-01-14,2000.00,abc,400.00,50.00\n"))
		if _, err := src.Next(); err == nil {
			t.Error("expected error for malformed amount")
		}
	})
}

func TestParseCents(t *testing.T) {
	valid := []struct {
		input string
		want  int64
	}{
		{"5", 500},
		{"5.5", 550},
		{"5.50", 550},
		{"0.01", 1},
		{".75", 75},
		{"1,234.56", 123456},
		{"-3.25", -325},
		{"+3.25", 325},
		{"  12.00 ", 1200},
		{"0", 0},
	}
	for _, tc := range valid {
		got, err := parseCents(tc.input)
		if err != nil {
			t.Errorf("parseCents(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseCents(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}

	invalid := []string{"", "abc", "5.505", "5.", ".", "-", "1.2.3", "12e3"}
	for _, input := range invalid {
		if _, err := parseCents(input); err == nil {
			t.Errorf("parseCents(%q): expected error", input)
		}
	}
}
