package dto

import (
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

type UserResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func NewUserResponse(u *session.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

// SessionResponse is the resolved session state the client navigates on.
// The redirect path itself travels in the envelope's redirect field.
type SessionResponse struct {
	State     string        `json:"state"`
	User      *UserResponse `json:"user,omitempty"`
	Retryable bool          `json:"retryable"`
}
