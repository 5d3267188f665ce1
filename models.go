package bearer

import "time"

// User is the stored credential record. The password hash is produced by
// HashPassword; the plaintext password is never kept.
type User struct {
	Username     string     `json:"username,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
