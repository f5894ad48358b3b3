package service

import "errors"

// Validation and relation failures surfaced to the API layer. All are
// deterministic for a given input and scoped to one request.
var (
	ErrEmptyCollection  = errors.New("collection must not be empty")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrInvalidQuantity  = errors.New("amount must be at least 1")
	ErrUnknownReference = errors.New("unknown reference")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrSelfReference    = errors.New("self reference is not allowed")
	ErrNotAuthor        = errors.New("only the author can modify the recipe")
)
