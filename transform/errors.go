// Package transform implements the bidirectional content-transformation
// core: routing-table resolution, the recursive reference walker, and the
// per-field-type import/export conversion logic.
package transform

import (
	"errors"
	"fmt"
)

// ErrNoMappingData marks a mapping that was never configured.
var ErrNoMappingData = errors.New("mapping has no data")

// ConfigError is the only error class that propagates out of the
// transformation core: the current item is fatal, the surrounding batch is
// not. Resolution misses and parse errors are absorbed where they occur.
type ConfigError struct {
	ItemID  string
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.ItemID != "" {
		msg = fmt.Sprintf("item %s: %s", e.ItemID, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func configErr(itemID, field, message string, cause error) *ConfigError {
	return &ConfigError{ItemID: itemID, Field: field, Message: message, Cause: cause}
}
