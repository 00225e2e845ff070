package domain

import "time"

// Session identifies one browser session. Its history ends with it.
type Session struct {
	ID        string
	ExpiresAt time.Time
}
