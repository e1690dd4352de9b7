package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           string
	Email        string // unique, lowercased
	Name         string
	PasswordHash string // bcrypt encoded
	Role         Role
	CreatedAt    time.Time
	LastLogin    *time.Time // nil until first login
}
