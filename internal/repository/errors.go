package repository

import "errors"

var (
	ErrDBNotReady = errors.New("database not initialized")

	// ErrMatchDelete and ErrMatchInsert mark which step of a match replace failed.
	ErrMatchDelete = errors.New("delete existing matches")
	ErrMatchInsert = errors.New("insert match batch")
)
