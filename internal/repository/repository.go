// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres); interfaces here carry no business logic.
package repository

import "errors"

var (
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStateChanged is returned when a conditional update matched no row because
	// the record was not in the expected state.
	ErrStateChanged = errors.New("record not in expected state")
	// ErrInsufficientBalance is returned when a wallet debit would go negative.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
