package postgres

import "time"

type userRow struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Gender       string
	Role         string
	LastLogin    *time.Time
	CreatedAt    time.Time
}
