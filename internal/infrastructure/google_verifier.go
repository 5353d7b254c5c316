package infrastructure

import (
	"context"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
)

const providerVerifyTimeout = 10 * time.Second

// GoogleVerifier validates Google ID tokens against the configured OAuth
// client id and extracts the identity the reconciler needs.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, token string) (*entities.ProviderIdentity, error) {
	if v.clientID == "" {
		return nil, apperrors.ErrProviderAssertion
	}

	ctx, cancel := context.WithTimeout(ctx, providerVerifyTimeout)
	defer cancel()

	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, apperrors.ErrProviderAssertion
	}

	email, _ := payload.Claims["email"].(string)
	if payload.Subject == "" || email == "" {
		return nil, apperrors.ErrProviderAssertion
	}
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)

	return &entities.ProviderIdentity{
		Subject:   payload.Subject,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}
