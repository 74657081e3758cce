package models

import "time"

// User represents a login account. Password hashes never leave the user
// store, so the model carries none.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
