package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash carries a bcrypt hash and is populated only by the
// credential-verification lookup; listing and by-id lookups leave it empty.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
