package store

import "errors"

var (
	ErrNotFound  = errors.New("goal not found")
	ErrMissingID = errors.New("goal id is required")
)
