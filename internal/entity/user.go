package entity

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleExecutive
}

// User is anyone who signs into the system. Only executives carry a site
// assignment; they are the ones doing field check-ins.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	AssignedSiteID string    `json:"assigned_site_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewUser(name, email string, role Role, assignedSiteID string) (*User, error) {
	user := &User{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		Role:           role,
		AssignedSiteID: assignedSiteID,
		CreatedAt:      time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("email is invalid")
	}
	if !u.Role.Valid() {
		return errors.New("role must be admin, manager or executive")
	}
	if u.AssignedSiteID != "" && u.Role != RoleExecutive {
		return errors.New("only executives can have an assigned site")
	}
	return nil
}
