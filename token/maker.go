package token

import "time"

// Maker is an interface for managing tokens
type Maker interface {
	// CreateToken creates a new token for a specific email/role and duration
	CreateToken(email, role string, duration time.Duration) (string, error)

	// VerifyToken checks if the token is valid and returns its payload
	VerifyToken(token string) (*Payload, error)
}
