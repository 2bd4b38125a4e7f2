package services

import "errors"

var (
	// ErrUnauthorized marks actions requiring creator or admin privilege.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidOperation marks structurally invalid requests, e.g. a group
	// challenge created without any groups.
	ErrInvalidOperation = errors.New("invalid operation")
)
