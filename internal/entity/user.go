package entity

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Bcrypt hash. Never serialized.
	Password string `json:"-"`

	// Plaintext recovery password handed out by an admin. Only visible on
	// the admin user listing.
	TempPassword string `json:"temp_password,omitempty"`

	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(email, name, hashedPassword string) (*User, error) {
	user := &User{
		Email:     email,
		Name:      name,
		Password:  hashedPassword,
		Role:      RoleUser,
		CreatedAt: time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
