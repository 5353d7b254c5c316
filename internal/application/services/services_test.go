package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
	"github.com/expensave/expensave-backend/internal/infrastructure"
	"github.com/expensave/expensave-backend/internal/infrastructure/db/postgres"
)

type captureMailer struct {
	email string
	token string
	sent  int
	err   error
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, _ string, token string) error {
	if m.err != nil {
		return m.err
	}
	m.email = email
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

type testEnv struct {
	users        repositories.UserRepository
	categories   repositories.CategoryRepository
	transactions repositories.TransactionRepository
	tokens       *infrastructure.JWTService
	registry     *SessionRegistry
	mailer       *captureMailer
	google       *stubGoogle
	facebook     *stubFacebook
	auth         *AuthService
	userSvc      *UserService
	categorySvc  *CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		users:        postgres.NewUserRepository(db),
		categories:   postgres.NewCategoryRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		tokens:       infrastructure.NewJWTService("test-secret"),
		mailer:       &captureMailer{},
		google:       &stubGoogle{},
		facebook:     &stubFacebook{},
	}
	env.registry = NewSessionRegistry(env.users, nil)
	env.auth = NewAuthService(env.users, env.categories, env.tokens, env.registry, env.mailer, env.google, env.facebook)
	env.userSvc = NewUserService(env.users, env.registry)
	env.categorySvc = NewCategoryService(env.categories)
	return env
}

func (e *testEnv) register(t *testing.T, email, password string) (*entities.User, string) {
	t.Helper()
	user, token, err := e.auth.Register(context.Background(), "Test", "User", email, password)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) isActive(t *testing.T, user *entities.User, token string) bool {
	t.Helper()
	active, err := e.registry.IsActive(context.Background(), user.ID, token)
	require.NoError(t, err)
	return active
}
