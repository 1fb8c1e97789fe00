package models

import "time"

// User is a registered portal account. PasswordHash is a bcrypt hash; the
// plaintext is never stored.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
}
