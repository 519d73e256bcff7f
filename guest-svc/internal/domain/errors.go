package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailableItems     = errors.New("one or more items are unavailable")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateOrderNumber = errors.New("order number already taken")
	ErrCheckoutInProgress   = errors.New("checkout already in progress for this cart")
)

// ValidationError names the field whose constraint was violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
