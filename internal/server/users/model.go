package users

import "time"

// User is a registered account. PasswordHash is an opaque bcrypt digest;
// the raw password is never stored or compared in plaintext.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
