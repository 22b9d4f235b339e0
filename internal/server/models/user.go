package models

import "time"

// User is a stored credential. PasswordHash is a bcrypt hash; the plaintext
// password is never kept.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
