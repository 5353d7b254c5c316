package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/infrastructure"
)

func TestSignUpLogInLogOutFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"firstName": "Alice", "lastName": "Smith",
		"email": "alice@example.com", "password": "goodPass1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, true, user["isNative"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "goodPass1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decodeJSON(t, rec)["token"].(string)

	rec = srv.request(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the revoked token is still a valid JWT, but it is no longer honored
	rec = srv.request(t, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "bob@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"firstName": "Other", "lastName": "Bob",
		"email": "bob@example.com", "password": "otherPass2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.ErrDuplicateEmail.Error(), decodeJSON(t, rec)["error"])
}

func TestLogInFailuresLookAlike(t *testing.T) {
	srv := newTestServer(t)
	srv.signUp(t, "carol@example.com", "goodPass1")

	wrongPassword := srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "wrongPass1",
	})
	unknownEmail := srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "goodPass1",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogOutAllRevokesEveryDevice(t *testing.T) {
	srv := newTestServer(t)
	first := srv.signUp(t, "dave@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "dave@example.com", "password": "goodPass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeJSON(t, rec)["token"].(string)
	require.NotEqual(t, first, second)

	rec = srv.request(t, http.MethodPost, "/auth/logoutAll", second, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", first, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", second, nil).Code)
}

func TestPasswordResetFlow(t *testing.T) {
	srv := newTestServer(t)
	session := srv.signUp(t, "erin@example.com", "oldPass12")

	rec := srv.request(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{
		"email": "erin@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password reset email successfully sent!", decodeJSON(t, rec)["message"])
	require.NotEmpty(t, srv.mailer.token)

	rec = srv.request(t, http.MethodPost, "/auth/reset-password?token="+srv.mailer.token, "", map[string]string{
		"password": "newPass34",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password changed successfully!", decodeJSON(t, rec)["message"])

	// old credential dead, pre-reset session dead, new credential live
	rec = srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "erin@example.com", "password": "oldPass12",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", session, nil).Code)

	rec = srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "erin@example.com", "password": "newPass34",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// the token was consumed by the successful reset
	rec = srv.request(t, http.MethodPost, "/auth/reset-password?token="+srv.mailer.token, "", map[string]string{
		"password": "anotherPass5",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{
		"email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, srv.mailer.sent)
}

func TestResetPasswordGarbageToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, http.MethodPost, "/auth/reset-password?token=not.a.jwt", "", map[string]string{
		"password": "newPass34",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditProfile(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "frank@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPatch, "/users/me", token, map[string]string{
		"firstName": "Franklin", "lastName": "Stone",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeJSON(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "Franklin", user["firstName"])
	assert.Equal(t, "Stone", user["lastName"])
}

func TestEditProfileUnknownFieldRejected(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "grace@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPatch, "/users/me", token, map[string]interface{}{
		"firstName": "Gracie",
		"role":      "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// nothing from the rejected request was applied
	rec = srv.request(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeJSON(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "Test", user["firstName"])
}

func TestEditProfileWeakPassword(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "heidi@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPatch, "/users/me", token, map[string]string{
		"password": "Password1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "ivan@example.com", "goodPass1")

	rec := srv.request(t, http.MethodDelete, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", token, nil).Code)

	rec = srv.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ivan@example.com", "password": "goodPass1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGate(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", "not-a-jwt", nil).Code)

	forged := infrastructure.NewJWTService("other-secret")
	token, err := forged.IssueSessionToken(uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/users/me", token, nil).Code)
}

func TestGoogleLogInCreatesAccount(t *testing.T) {
	srv := newTestServer(t)
	srv.google.identity = &entities.ProviderIdentity{
		Subject:   "google-sub-123",
		Email:     "judy@example.com",
		FirstName: "Judy",
		LastName:  "Hale",
	}

	rec := srv.request(t, http.MethodPost, "/auth/login/google", "", map[string]string{
		"googleToken": "stub-id-token",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "judy@example.com", user["email"])
	assert.Equal(t, false, user["isNative"])

	token := body["token"].(string)
	rec = srv.request(t, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []entities.Category
	require.NoError(t, jsonUnmarshal(rec, &categories))
	assert.Len(t, categories, 6)

	// second login reuses the account instead of creating a sibling
	rec = srv.request(t, http.MethodPost, "/auth/login/google", "", map[string]string{
		"googleToken": "stub-id-token",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	again := decodeJSON(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, user["id"], again["id"])
}

func TestGoogleLogInRejectedAssertion(t *testing.T) {
	srv := newTestServer(t)
	srv.google.err = apperrors.ErrProviderAssertion

	rec := srv.request(t, http.MethodPost, "/auth/login/google", "", map[string]string{
		"googleToken": "tampered",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFacebookLogIn(t *testing.T) {
	srv := newTestServer(t)
	srv.facebook.subject = "fb-user-42"

	rec := srv.request(t, http.MethodPost, "/auth/login/fb", "", map[string]string{
		"fbToken":   "stub-access-token",
		"firstName": "Kim",
		"lastName":  "Lee",
		"email":     "kim@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeJSON(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "Kim", user["firstName"])
	assert.Equal(t, false, user["isNative"])
}

func TestCategoryAndTransactionFlow(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "liam@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPost, "/categories", token, map[string]string{
		"name": "groceries", "transactionType": "Expense",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decodeJSON(t, rec)["category"].(map[string]interface{})
	categoryID := category["id"].(string)

	rec = srv.request(t, http.MethodPost, "/transactions", token, map[string]interface{}{
		"transactionDate": time.Now().UTC().Format("2006-01-02"),
		"name":            "weekly shop",
		"amount":          54.20,
		"description":     "market",
		"categories":      []string{categoryID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.request(t, http.MethodGet, "/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var transactions []entities.Transaction
	require.NoError(t, jsonUnmarshal(rec, &transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, "weekly shop", transactions[0].Name)
}

func TestAddCategoryInvalidType(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "mona@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPost, "/categories", token, map[string]string{
		"name": "misc", "transactionType": "Sideways",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddTransactionBadDate(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "nina@example.com", "goodPass1")

	rec := srv.request(t, http.MethodPost, "/transactions", token, map[string]interface{}{
		"transactionDate": "yesterday-ish",
		"name":            "coffee",
		"amount":          3.50,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	limiter := infrastructure.NewRateLimiter(time.Hour, 2)
	e.GET("/limited", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(limiter))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", strings.NewReader(""))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
