// Package models holds the backend's records. The JSON tags are the wire
// shapes of the REST API.
package models

import "time"

type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"nome" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"telefone" db:"phone"`
	Bio          string    `json:"bio,omitempty" db:"bio"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}
