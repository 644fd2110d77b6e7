// Package ingest provides lazy CSV-backed record sources for bulk ingestion.
// Rows are parsed one at a time as the consuming ingestor pulls them, so
// parsing a large file proceeds concurrently with the open transaction and a
// malformed row surfaces exactly at its position in the sequence.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ledger/internal/services"
)

const dateFormat = "2006-01-02"

// PurchaseCSV reads purchase records from CSV rows of the form
// date,description,amount,category. The category field may be empty, which
// yields a record naming no category; the consuming ingestor rejects such a
// record and rolls back the batch. The reader is strict: it has no header
// handling, and any unparsable row is returned as an error from Next.
type PurchaseCSV struct {
	reader *csv.Reader
	line   int
}

// NewPurchaseCSV creates a purchase source reading from r.
func NewPurchaseCSV(r io.Reader) *PurchaseCSV {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	return &PurchaseCSV{reader: reader}
}

// Next parses and returns the next purchase record. It returns io.EOF once
// the file is exhausted.
func (c *PurchaseCSV) Next() (*services.PurchaseRecord, error) {
	row, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv row: %w", err)
	}
	c.line++

	date, err := time.Parse(dateFormat, strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("line %d: parse date %q: %w", c.line, row[0], err)
	}

	amount, err := parseCents(row[2])
	if err != nil {
		return nil, fmt.Errorf("line %d: parse amount %q: %w", c.line, row[2], err)
	}

	record := &services.PurchaseRecord{
		Date:        date,
		Description: strings.TrimSpace(row[1]),
		Amount:      amount,
	}
	if category := strings.TrimSpace(row[3]); category != "" {
		record.Category = &category
	}
	return record, nil
}

// PayPeriodCSV reads pay-period records from CSV rows of the form
// start,end,earnings,pretax,taxes,posttax.
type PayPeriodCSV struct {
	reader *csv.Reader
	line   int
}

// NewPayPeriodCSV creates a pay-period source reading from r.
func NewPayPeriodCSV(r io.Reader) *PayPeriodCSV {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	return &PayPeriodCSV{reader: reader}
}

// Next parses and returns the next pay-period record. It returns io.EOF once
// the file is exhausted.
func (c *PayPeriodCSV) Next() (*services.PayPeriodRecord, error) {
	row, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv row: %w", err)
	}
	c.line++

	start, err := time.Parse(dateFormat, strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("line %d: parse start date %q: %w", c.line, row[0], err)
	}
	end, err := time.Parse(dateFormat, strings.TrimSpace(row[1]))
	if err != nil {
		return nil, fmt.Errorf("line %d: parse end date %q: %w", c.line, row[1], err)
	}

	record := &services.PayPeriodRecord{StartDate: start, EndDate: end}
	for i, dst := range []*int64{
		&record.Earnings,
		&record.PreTaxDeductions,
		&record.Taxes,
		&record.PostTaxDeductions,
	} {
		value, err := parseCents(row[2+i])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse amount %q: %w", c.line, row[2+i], err)
		}
		*dst = value
	}
	return record, nil
}

// parseCents converts a decimal money string like "-1,234.56" into cents.
// Thousands separators are tolerated; at most two fractional digits are
// accepted so no value is silently rounded.
func parseCents(input string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if frac == "" {
			return 0, fmt.Errorf("malformed amount")
		}
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("malformed amount")
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("more than two fractional digits")
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}
