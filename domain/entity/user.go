package entity

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewUser(id, email, fullName, hashedPassword string) *User {
	now := time.Now()
	return &User{
		ID:             id,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
