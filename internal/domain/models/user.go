package models

import "time"

// User is an account that can author documents and comments
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Caller converts the stored user into a request identity
func (u *User) Caller() *Caller {
	return &Caller{UserID: u.ID, Email: u.Email, Role: u.Role}
}
