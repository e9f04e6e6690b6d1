package domain

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity and id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidStateError indicates an operation attempted against an entity
// whose current status does not allow it.
type InvalidStateError struct {
	Entity string
	ID     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

// NewInvalidState builds an InvalidStateError.
func NewInvalidState(entity, id, reason string) error {
	return &InvalidStateError{Entity: entity, ID: id, Reason: reason}
}

// NoAvailableOutletError indicates that every outlet of a station has a
// conflicting reservation for the requested window.
type NoAvailableOutletError struct {
	StationID string
	StartTime time.Time
	Hours     float64
}

func (e *NoAvailableOutletError) Error() string {
	return fmt.Sprintf("no available outlet at station %s for %s (+%.2fh)",
		e.StationID, e.StartTime.Format(time.RFC3339), e.Hours)
}

// InsufficientFundsError indicates a wallet debit that would drive the
// balance negative.
type InsufficientFundsError struct {
	AccountID string
	Required  float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for account %s: have %.2f, need %.2f",
		e.AccountID, e.Available, e.Required)
}

// ValidationError indicates malformed or out-of-range input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsInvalidState reports whether err is (or wraps) an InvalidStateError.
func IsInvalidState(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}

// IsNoAvailableOutlet reports whether err is (or wraps) a NoAvailableOutletError.
func IsNoAvailableOutlet(err error) bool {
	var e *NoAvailableOutletError
	return errors.As(err, &e)
}

// IsInsufficientFunds reports whether err is (or wraps) an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var e *InsufficientFundsError
	return errors.As(err, &e)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
