package session

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdvisor Role = "advisor"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleAdvisor:
		return RoleAdvisor, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdvisor
}

// User is the record the backend returns on login/registration and the
// gateway persists alongside the bearer token.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Session pairs a user record with the bearer token that authenticates it.
// Both are persisted together; one without the other is treated as corrupt.
type Session struct {
	User  User
	Token string
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User.Role.Valid()
}
