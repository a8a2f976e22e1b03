package domain

import "time"

// User is a registered account. HashedPassword never leaves the service.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	RegisteredDate time.Time `json:"registered_date"`
	HashedPassword string    `json:"-"`
	RoleID         int64     `json:"-"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"-"`
}

// CanAuthenticate reports whether the account may present credentials or tokens.
func (u *User) CanAuthenticate() bool {
	return u != nil && u.IsActive
}

// Validate checks the fields every listed user must carry. Rows failing it are
// skipped by listings.
func (u *User) Validate() error {
	switch {
	case u.ID <= 0:
		return invalid("id")
	case u.Username == "":
		return invalid("username")
	case u.FullName == "":
		return invalid("full_name")
	case u.Email == "":
		return invalid("email")
	case u.Role == "":
		return invalid("role")
	case u.RegisteredDate.IsZero():
		return invalid("registered_date")
	}
	return nil
}

// Registration carries the self-service sign-up fields.
type Registration struct {
	Username string
	Password string
	Email    string
	FullName string
}

// Token is the bearer credential handed out on login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

const TokenTypeBearer = "bearer"
