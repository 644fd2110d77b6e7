package models

import "time"

// Purchase represents a single recorded purchase in the ledger.
//
// CategoryID is nullable: deleting a category nulls the reference on its
// purchases rather than deleting them, so historical spending data survives
// category cleanup. Amount is in minor currency units (cents) and may be
// negative (refunds).
type Purchase struct {
	Base
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	CategoryID  *uint     `json:"category_id,omitempty"`

	// ImportID tags every row inserted by one bulk-ingest call with a shared
	// UUIDv7; nil for purchases created through the single-record path.
	ImportID *string `gorm:"type:varchar(36);index" json:"import_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
