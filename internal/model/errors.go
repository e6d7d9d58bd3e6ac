package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username taken")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
)
