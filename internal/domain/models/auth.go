package models

import "github.com/golang-jwt/jwt/v5"

// Roles understood by the access policy
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AccessClaims represents the JWT claims issued by the session service.
// Older tokens carry the user id in a "userId" claim instead of "sub".
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	LegacyUserID         string `json:"userId,omitempty"`
	Email                string `json:"email,omitempty"`
}

// GetUserID returns the user ID from the subject claim, falling back to the legacy claim.
func (c *AccessClaims) GetUserID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.LegacyUserID
}

// Caller is the authenticated identity a command runs on behalf of.
// Role is resolved from the users table, never trusted from the token.
type Caller struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
