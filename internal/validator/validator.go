// Package validator wraps a single shared go-playground validator instance.
// The instance caches struct metadata, so every caller must go through this
// package rather than constructing its own.
package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the exposed fields of s against its `validate` tags.
// It returns a validator.ValidationErrors on failure.
func Struct(s interface{}) error {
	return validate.Struct(s)
}
