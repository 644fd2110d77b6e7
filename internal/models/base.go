package models

import "time"

// Base contains common columns for all tables. Rows are hard-deleted:
// category deletion must observably null out purchase references, which a
// soft-delete scheme would hide.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
