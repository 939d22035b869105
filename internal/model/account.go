package model

import "strings"

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return invalid("", "Email and password are required")
	}
	return nil
}

// AccountUpdate changes the signed-in account. NewPassword is optional.
type AccountUpdate struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword,omitempty"`
}

func (a *AccountUpdate) Validate() error {
	a.Email = strings.TrimSpace(a.Email)
	if a.Email == "" {
		return invalid("email", "Email is required")
	}
	if a.CurrentPassword == "" {
		return invalid("currentPassword", "Current password is required to make changes")
	}
	return nil
}
