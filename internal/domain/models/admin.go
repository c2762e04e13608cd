package models

import "time"

// AdminUser marks a platform user as having dashboard access.
type AdminUser struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy *string   `json:"created_by,omitempty" db:"created_by"`
}

// Role is a named grouping of permissions.
type Role struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Permission is a resource/action pair a role may hold.
type Permission struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Resource    string `json:"resource" db:"resource"`
	Action      string `json:"action" db:"action"`
}

// UserRole assigns a role to a user.
type UserRole struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	RoleID     string    `json:"role_id" db:"role_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
	AssignedBy *string   `json:"assigned_by,omitempty" db:"assigned_by"`
	Role       *Role     `json:"role,omitempty" db:"-"`
}

// PlatformUser is a row from the Supabase admin users API, surfaced on the
// admin dashboard. It is not stored locally.
type PlatformUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}
