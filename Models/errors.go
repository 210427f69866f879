package Models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound matches every lookup that found no row.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every rejected input.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError is returned by single-row lookups by id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StartKmTooLowError rejects a drive whose start reading is below the
// end reading of the previous drive.
type StartKmTooLowError struct {
	StartKm       int
	PreviousEndKm int
}

func (e *StartKmTooLowError) Error() string {
	return fmt.Sprintf("Start km (%d) cannot be lower than previous End km (%d)", e.StartKm, e.PreviousEndKm)
}

func (e *StartKmTooLowError) Is(target error) bool {
	return target == ErrValidation
}

// EndKmTooLowError rejects an end reading below the drive's start reading.
type EndKmTooLowError struct {
	EndKm   int
	StartKm int
}

func (e *EndKmTooLowError) Error() string {
	return fmt.Sprintf("End km (%d) cannot be lower than Start km (%d)", e.EndKm, e.StartKm)
}

func (e *EndKmTooLowError) Is(target error) bool {
	return target == ErrValidation
}

// InputError carries per-field messages for malformed form input.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *InputError) Is(target error) bool {
	return target == ErrValidation
}

// DriveInProgressError is returned when a new drive is requested while
// another one has not been ended.
type DriveInProgressError struct {
	DriveLogID int64
}

func (e *DriveInProgressError) Error() string {
	return fmt.Sprintf("drive log %d is still in progress", e.DriveLogID)
}

// StoreError wraps any persistence failure that has no better kind.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
