package domain

import "time"

// User is the sole persistent entity of the account service.
// PasswordHash never leaves the server; transport DTOs must not carry it.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Gender       string
	Role         string
	LastLogin    *time.Time
	CreatedAt    time.Time
}
