package dto

import "strings"

// RegisterRequest is the payload for POST /api/register. All four fields are
// required; callers who don't collect gender send "unknown" explicitly.
// Email is kept exactly as sent: the login key is case-sensitive.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Gender   string `json:"gender" validate:"required,oneof=male female unknown"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return checkStruct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return checkStruct(r)
}

// UpdateUserRequest is the payload for PUT /api/users/{id}.
// Role changes go through SetRoleRequest, never here.
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email,max=255"`
	Gender string `json:"gender" validate:"omitempty,oneof=male female unknown"`
}

func (r *UpdateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return checkStruct(r)
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (r *SetRoleRequest) Validate() error {
	return checkStruct(r)
}
