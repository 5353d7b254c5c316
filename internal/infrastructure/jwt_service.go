package infrastructure

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expensave/expensave-backend/internal/apperrors"
)

const sessionTokenTTL = 7 * 24 * time.Hour

// SessionClaims are carried by bearer session tokens. Expiry is an absolute
// claim inside the token; revocation state lives elsewhere.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// ResetClaims are carried by password-reset tokens. They deliberately have no
// expiry claim: the token is a capability, the expiry is state on the user
// record it unlocks.
type ResetClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// JWTService mints and verifies HS256-signed tokens. Verification is a pure
// computation and safe for concurrent use.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret), now: time.Now}
}

func (j *JWTService) IssueSessionToken(userID string) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every mint unique, so revocation by exact match can
			// never catch a sibling token issued in the same second.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(j.now()),
			ExpiresAt: jwt.NewNumericDate(j.now().Add(sessionTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTService) VerifySessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, apperrors.ErrTokenMalformed
	}
	return claims, nil
}

func (j *JWTService) IssueResetToken(userID string) (string, error) {
	claims := ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(j.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTService) VerifyResetToken(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, apperrors.ErrTokenMalformed
	}
	return claims, nil
}

func (j *JWTService) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, apperrors.ErrTokenSignature
	}
	return j.secret, nil
}

// mapJWTError folds library errors into the closed error-kind set. Signature
// failure wins over expiry: an attacker must not learn claim validity from a
// forged token.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.ErrTokenExpired
	default:
		return apperrors.ErrTokenMalformed
	}
}
