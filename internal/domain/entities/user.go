package entities

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expensave/expensave-backend/internal/apperrors"
)

const minPasswordLength = 7

// User is the single identity record for both native (password) accounts and
// provider-backed accounts. For provider accounts the password column holds a
// bcrypt hash of the provider's subject id, so lookup and comparison share one
// code path with native login.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsNative     bool

	// SessionTokens is the set of currently honored session tokens. Presence
	// in this set is the only proof a bearer request may act as this user.
	SessionTokens []string

	ResetPasswordToken  string
	ResetPasswordExpiry time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a native account with a validated email and a hashed
// password.
func NewUser(firstName, lastName, email, password string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(firstName),
		LastName:      strings.TrimSpace(lastName),
		Email:         normalized,
		IsNative:      true,
		SessionTokens: make([]string, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewProviderUser creates an account authenticated by an external identity
// provider. The provider's subject id is hashed into the password column; no
// password-strength rules apply to it since it is not user-chosen.
func NewProviderUser(identity ProviderIdentity) (*User, error) {
	normalized, err := NormalizeEmail(identity.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(identity.FirstName),
		LastName:      strings.TrimSpace(identity.LastName),
		Email:         normalized,
		IsNative:      false,
		SessionTokens: make([]string, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.setCredential(identity.Subject); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail lowercases, trims and syntactically validates an email
// address. Uniqueness is always enforced against the normalized form.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", apperrors.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", apperrors.ErrInvalidEmail
	}
	return normalized, nil
}

// ValidatePassword applies the strength rules for user-chosen passwords.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// SetPassword validates and re-hashes a user-chosen password.
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return u.setCredential(password)
}

func (u *User) setCredential(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckCredential compares a candidate secret (password or provider subject
// id) against the stored hash.
func (u *User) CheckCredential(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)) == nil
}

func (u *User) AddSessionToken(token string) {
	u.SessionTokens = append(u.SessionTokens, token)
	u.UpdatedAt = time.Now()
}

// RemoveSessionToken removes exactly the matching token; every other token
// issued to the user stays valid.
func (u *User) RemoveSessionToken(token string) {
	kept := u.SessionTokens[:0]
	for _, t := range u.SessionTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.SessionTokens = kept
	u.UpdatedAt = time.Now()
}

func (u *User) ClearSessionTokens() {
	u.SessionTokens = make([]string, 0)
	u.UpdatedAt = time.Now()
}

func (u *User) HasSessionToken(token string) bool {
	for _, t := range u.SessionTokens {
		if t == token {
			return true
		}
	}
	return false
}

// SetResetToken records a pending password reset. A re-request overwrites the
// previous token and expiry, invalidating the earlier link.
func (u *User) SetResetToken(token string, expiry time.Time) {
	u.ResetPasswordToken = token
	u.ResetPasswordExpiry = expiry
	u.UpdatedAt = time.Now()
}

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpiry = time.Time{}
	u.UpdatedAt = time.Now()
}

// PublicUser is the sanitized serialization of a User. The password hash and
// token state never appear in it.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email"`
	IsNative  bool      `json:"isNative"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitize produces the public view used for every response carrying a user.
func (u *User) Sanitize() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsNative:  u.IsNative,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
