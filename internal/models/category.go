package models

// Category represents a purchase category. Purchases reference a category by
// ID, never by name, so renaming a category leaves purchase rows untouched.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Purchases []Purchase `gorm:"foreignKey:CategoryID" json:"purchases,omitempty"`
}
