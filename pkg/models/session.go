package models

import "time"

// SessionCookieName is the cookie that carries the session token between
// browser and server.
const SessionCookieName = "nas_session"

// Session represents an issued login session.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
