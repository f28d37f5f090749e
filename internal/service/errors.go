package service

import (
	"errors"

	"github.com/shinyyama/crib-match-backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientTokens = errors.New("not enough tokens")

	ErrMatchFetch  = errors.New("fetch preferences")
	ErrMatchDelete = repository.ErrMatchDelete
	ErrMatchInsert = repository.ErrMatchInsert
)

// StoreError is a failure of the token store. Its message is the store's own.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
