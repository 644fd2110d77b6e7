package models

import "time"

// PayPeriod represents earnings and deductions for one pay period.
// All monetary fields are in minor currency units (cents).
type PayPeriod struct {
	Base
	StartDate         time.Time `gorm:"not null;index" json:"start_date"`
	EndDate           time.Time `gorm:"not null" json:"end_date"`
	Earnings          int64     `gorm:"type:bigint;not null" json:"earnings"`
	PreTaxDeductions  int64     `gorm:"type:bigint;not null" json:"pre_tax_deductions"`
	Taxes             int64     `gorm:"type:bigint;not null" json:"taxes"`
	PostTaxDeductions int64     `gorm:"type:bigint;not null" json:"post_tax_deductions"`

	// ImportID tags every row inserted by one bulk-ingest call.
	ImportID *string `gorm:"type:varchar(36);index" json:"import_id,omitempty"`
}

// NetPay returns earnings minus all deductions and taxes. It is derived,
// never stored.
func (p *PayPeriod) NetPay() int64 {
	return p.Earnings - p.PreTaxDeductions - p.Taxes - p.PostTaxDeductions
}

// IsAdditionalCompensation reports whether this entry records compensation
// that never reached the paycheck (net pay of exactly zero), e.g. employer
// retirement contributions.
func (p *PayPeriod) IsAdditionalCompensation() bool {
	return p.NetPay() == 0
}
