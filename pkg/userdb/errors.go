package userdb

import "errors"

var (
	// ErrUserExists is returned when creating a user whose name is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUsername is returned when a username does not meet the
	// naming requirements.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidCredentials is returned when a username/password pair does
	// not match an account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a session token is unknown or
	// expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("database error")
)
