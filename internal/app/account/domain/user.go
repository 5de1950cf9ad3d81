package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt hashes.
	MaxPasswordBytes = 72
	maxNameLength    = 255
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered shopper. Only the bcrypt hash of the password is kept.
type User struct {
	id           string
	name         string
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
	events       []DomainEvent
}

// NormalizeEmail trims and lower-cases an address and checks it parses.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// NewUser registers a user with the "user" role and records UserRegisteredEvent.
func NewUser(id, name, email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrNameTooLong
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	u := &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         RoleUser,
		createdAt:    now,
		updatedAt:    now,
	}
	u.events = append(u.events, &UserRegisteredEvent{
		UserID:       id,
		Email:        email,
		RegisteredAt: now,
	})
	return u, nil
}

func (u *User) ID() string                  { return u.id }
func (u *User) Name() string                { return u.name }
func (u *User) Email() string               { return u.email }
func (u *User) PasswordHash() string        { return u.passwordHash }
func (u *User) Role() Role                  { return u.role }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }
func (u *User) DomainEvents() []DomainEvent { return u.events }
