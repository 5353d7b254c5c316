package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
	"github.com/expensave/expensave-backend/internal/infrastructure"
)

const resetTokenValidity = time.Hour

// Compared against when the email is unknown so the unknown-email and
// wrong-password paths take the same time.
var timingDecoyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, firstName, token string) error
}

type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*entities.ProviderIdentity, error)
}

type FacebookVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

// AuthService orchestrates registration, login, provider reconciliation and
// the password-reset flow.
type AuthService struct {
	users      repositories.UserRepository
	categories repositories.CategoryRepository
	tokens     *infrastructure.JWTService
	sessions   *SessionRegistry
	mailer     ResetMailer
	google     GoogleVerifier
	facebook   FacebookVerifier
	now        func() time.Time
}

func NewAuthService(
	users repositories.UserRepository,
	categories repositories.CategoryRepository,
	tokens *infrastructure.JWTService,
	sessions *SessionRegistry,
	mailer ResetMailer,
	google GoogleVerifier,
	facebook FacebookVerifier,
) *AuthService {
	return &AuthService{
		users:      users,
		categories: categories,
		tokens:     tokens,
		sessions:   sessions,
		mailer:     mailer,
		google:     google,
		facebook:   facebook,
		now:        time.Now,
	}
}

// Register creates a native account and logs it in. The duplicate-email check
// is the unique index on the insert itself, so concurrent registrations with
// one email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*entities.User, string, error) {
	user, err := entities.NewUser(firstName, lastName, email, password)
	if err != nil {
		return nil, "", err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	return s.startSession(ctx, user)
}

// Login verifies native credentials. Both failure paths return the same
// error; neither reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	normalized, err := entities.NormalizeEmail(email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(timingDecoyHash, []byte(password))
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if !user.CheckCredential(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*entities.User, string, error) {
	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", apperrors.ErrProviderAssertion
	}
	return s.reconcileProvider(ctx, *identity)
}

// LoginWithFacebook introspects the access token; Facebook supplies no
// profile claims on this path, so the client sends them alongside the token.
func (s *AuthService) LoginWithFacebook(ctx context.Context, accessToken, firstName, lastName, email string) (*entities.User, string, error) {
	subject, err := s.facebook.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, "", apperrors.ErrProviderAssertion
	}
	return s.reconcileProvider(ctx, entities.ProviderIdentity{
		Subject:   subject,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
}

// reconcileProvider maps a verified provider identity onto a local user,
// creating one on first login. The provider subject id goes through the same
// hash-and-compare path as a native password.
func (s *AuthService) reconcileProvider(ctx context.Context, identity entities.ProviderIdentity) (*entities.User, string, error) {
	normalized, err := entities.NormalizeEmail(identity.Email)
	if err != nil {
		return nil, "", apperrors.ErrProviderAssertion
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if user != nil {
		if !user.CheckCredential(identity.Subject) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return s.startSession(ctx, user)
	}

	user, err = entities.NewProviderUser(identity)
	if err != nil {
		return nil, "", err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	// First login only: give the new account its starter categories.
	if err := s.categories.CreateBatch(ctx, entities.StarterCategories(user.ID)); err != nil {
		return nil, "", err
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) startSession(ctx context.Context, user *entities.User) (*entities.User, string, error) {
	token, err := s.tokens.IssueSessionToken(user.ID.String())
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Record(ctx, user.ID, token); err != nil {
		return nil, "", err
	}
	user.AddSessionToken(token)
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	return s.sessions.Revoke(ctx, userID, token)
}

func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.RevokeAll(ctx, userID)
}

// RequestPasswordReset issues a reset token for a native account and emails
// the reset link. Unlike login this surfaces not-found, a deliberate usability
// trade-off. Re-requesting overwrites the previous token and expiry.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	normalized, err := entities.NormalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if user == nil || !user.IsNative {
		return apperrors.ErrNotFound
	}

	token, err := s.tokens.IssueResetToken(user.ID.String())
	if err != nil {
		return err
	}
	expiry := s.now().Add(resetTokenValidity)

	updated, err := s.users.UpdateAtomic(ctx, user.ID, func(u *entities.User) error {
		u.SetResetToken(token, expiry)
		return nil
	})
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, updated.Email, updated.FirstName, token)
}

// ResetPassword consumes a reset token: the new password, the token clear and
// the revocation of every outstanding session commit as one atomic update.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.VerifyResetToken(token)
	if err != nil {
		return apperrors.ErrResetTokenInvalid
	}

	user, err := s.users.FindByResetToken(ctx, token, s.now())
	if err != nil {
		return err
	}
	if user == nil || user.ID.String() != claims.UserID {
		return apperrors.ErrResetTokenInvalid
	}

	_, err = s.users.UpdateAtomic(ctx, user.ID, func(u *entities.User) error {
		// Re-check against the freshest committed state: a concurrent consume
		// or re-request must invalidate this token exactly once.
		if u.ResetPasswordToken != token || !u.ResetPasswordExpiry.After(s.now()) {
			return apperrors.ErrResetTokenInvalid
		}
		if err := u.SetPassword(newPassword); err != nil {
			return err
		}
		u.ClearResetToken()
		u.ClearSessionTokens()
		return nil
	})
	if err != nil {
		return err
	}

	s.sessions.PurgeCache(ctx, user.ID)
	return nil
}
