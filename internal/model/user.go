package model

import "time"

// Role names as stored in the `users.role` column and carried in the
// JWT "role" claim.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered person as stored in the `users` table.
// The reservation core treats it as a read-only identity record: the
// admission service resolves a user by ID to attach an owner and an
// email snapshot to each reservation.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hash; never serialized.
//  Role         – "customer" or "admin".
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	Name         string    `json:"name"`      // users.name
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash
	Role         string    `json:"role"`      // users.role
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
	UpdatedAt    time.Time `json:"updatedAt"` // users.updated_at
}
