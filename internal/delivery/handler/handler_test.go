package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expensave/expensave-backend/internal/application/services"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/infrastructure"
	"github.com/expensave/expensave-backend/internal/infrastructure/db/postgres"
)

type captureMailer struct {
	token string
	sent  int
}

func (m *captureMailer) SendPasswordReset(_ context.Context, _, _ string, token string) error {
	m.token = token
	m.sent++
	return nil
}

type stubGoogle struct {
	identity *entities.ProviderIdentity
	err      error
}

func (s *stubGoogle) VerifyIDToken(context.Context, string) (*entities.ProviderIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

type stubFacebook struct {
	subject string
	err     error
}

func (s *stubFacebook) VerifyAccessToken(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.subject, nil
}

type testServer struct {
	echo     *echo.Echo
	mailer   *captureMailer
	google   *stubGoogle
	facebook *stubFacebook
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, postgres.Migrate(db))

	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	tokens := infrastructure.NewJWTService("test-secret")
	sessions := services.NewSessionRegistry(userRepo, nil)
	mailer := &captureMailer{}
	google := &stubGoogle{}
	facebook := &stubFacebook{}

	auth := services.NewAuthService(userRepo, categoryRepo, tokens, sessions, mailer, google, facebook)
	users := services.NewUserService(userRepo, sessions)
	categories := services.NewCategoryService(categoryRepo)
	transactions := services.NewTransactionService(transactionRepo)

	h := New(auth, users, categories, transactions, func() error { return nil })

	e := echo.New()
	noThrottle := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	RegisterRoutes(e, h, Authenticate(tokens, sessions), noThrottle)

	return &testServer{echo: e, mailer: mailer, google: google, facebook: facebook}
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func jsonUnmarshal(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func (s *testServer) signUp(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.request(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"firstName": "Test", "lastName": "User", "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decodeJSON(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
