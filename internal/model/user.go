package model

// User is a registered account.
// IDs are assigned by the storage backend and are monotonically increasing;
// usernames are globally unique and immutable once assigned.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized outward
}
