package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotEnoughSeats     = errors.New("not enough available seats on this flight")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrForbidden          = errors.New("forbidden")
)
