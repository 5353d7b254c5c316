package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/expensave/expensave-backend/internal/apperrors"
)

const defaultGraphURL = "https://graph.facebook.com"

// FacebookVerifier introspects a user access token against the Graph API
// debug_token endpoint using an app access token. Facebook supplies no
// profile claims on this path; the caller provides them and the introspection
// result is authoritative only for validity and the provider user id.
type FacebookVerifier struct {
	appID     string
	appSecret string
	baseURL   string
	client    *http.Client
}

func NewFacebookVerifier(appID, appSecret string) *FacebookVerifier {
	return &FacebookVerifier{
		appID:     appID,
		appSecret: appSecret,
		baseURL:   defaultGraphURL,
		client:    &http.Client{Timeout: providerVerifyTimeout},
	}
}

// NewFacebookVerifierWithBaseURL exists for tests that point the verifier at
// a local Graph API stub.
func NewFacebookVerifierWithBaseURL(appID, appSecret, baseURL string) *FacebookVerifier {
	v := NewFacebookVerifier(appID, appSecret)
	v.baseURL = baseURL
	return v
}

type appTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type debugTokenResponse struct {
	Data struct {
		IsValid bool   `json:"is_valid"`
		UserID  string `json:"user_id"`
	} `json:"data"`
}

// VerifyAccessToken returns the provider user id for a valid token and
// apperrors.ErrProviderAssertion otherwise, including on timeout.
func (v *FacebookVerifier) VerifyAccessToken(ctx context.Context, userToken string) (string, error) {
	if v.appID == "" || v.appSecret == "" {
		return "", apperrors.ErrProviderAssertion
	}

	appTokenURL := fmt.Sprintf("%s/oauth/access_token?client_id=%s&client_secret=%s&grant_type=client_credentials",
		v.baseURL, url.QueryEscape(v.appID), url.QueryEscape(v.appSecret))

	var appToken appTokenResponse
	if err := v.getJSON(ctx, appTokenURL, &appToken); err != nil || appToken.AccessToken == "" {
		return "", apperrors.ErrProviderAssertion
	}

	debugURL := fmt.Sprintf("%s/debug_token?input_token=%s&access_token=%s",
		v.baseURL, url.QueryEscape(userToken), url.QueryEscape(appToken.AccessToken))

	var debug debugTokenResponse
	if err := v.getJSON(ctx, debugURL, &debug); err != nil {
		return "", apperrors.ErrProviderAssertion
	}
	if !debug.Data.IsValid || debug.Data.UserID == "" {
		return "", apperrors.ErrProviderAssertion
	}
	return debug.Data.UserID, nil
}

func (v *FacebookVerifier) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graph api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
