package user

import "time"

// User represents a registered account. The password hash is never
// serialized to any client.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Title        string    `json:"title"`
	Avatar       string    `json:"avatar,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterInput holds the fields required to register a new account.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Title    string `json:"title"`
}
