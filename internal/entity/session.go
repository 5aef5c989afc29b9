package entity

import "time"

// Session records a login. Soft single-session policy: a new login
// deactivates the user's prior active sessions, nothing is checked at
// request time.
type Session struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	LoginAt    time.Time `json:"login_at"`
	SourceAddr string    `json:"source_addr"`
	Active     bool      `json:"active"`
}
