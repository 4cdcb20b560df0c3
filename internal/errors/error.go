package errors

import (
	"errors"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrEmptySubject       = errors.New("missing subject")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrFailedHashPassword = errors.New("failed hashing password")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrConflict           = errors.New("already exist")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrStorageConflict    = errors.New("concurrent modification, retry the operation")
	ErrInvalidRequest     = errors.New("invalid request")
)
