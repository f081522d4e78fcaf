package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, userID, name, avatar string) error {
	return m.Called(ctx, userID, name, avatar).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	return m.Called(ctx, userID, hashedPassword).Error(0)
}

func (m *mockUserRepo) SetResetToken(ctx context.Context, userID, hashedToken string, expireAt time.Time) error {
	return m.Called(ctx, userID, hashedToken, expireAt).Error(0)
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, hashedToken string) (*model.User, error) {
	args := m.Called(ctx, hashedToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID string, role model.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserRepo) FindAll(ctx context.Context, skip, limit int64) ([]*model.User, int64, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]*model.User), args.Get(1).(int64), args.Error(2)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("EmailExists", mock.Anything, "jane@example.com").Return(true, nil)

	_, _, err := svc.Register(context.Background(), "Jane", "Jane@Example.com", "pass1234", "")
	require.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("EmailExists", mock.Anything, "jane@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(&model.User{ID: "u1", Email: "jane@example.com", Role: model.RoleUser}, nil)
	users.On("GetByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Email: "jane@example.com"}, nil)

	user, token, err := svc.Register(context.Background(), "Jane", "jane@example.com", "pass1234", "")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, model.RoleUser, user.Role)

	// the issued token resolves back to the same account
	current, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&model.User{ID: "u1", Password: hashPassword(t, "correct")}, nil)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&model.User{ID: "u1", Password: hashPassword(t, "correct")}, nil)

	user, token, err := svc.Login(context.Background(), "jane@example.com", "correct")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)
}

func TestCurrentUserRejectsForgedToken(t *testing.T) {
	users := new(mockUserRepo)
	issuer := NewAuthService(users, "secret-a", time.Hour)
	verifier := NewAuthService(users, "secret-b", time.Hour)

	users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(&model.User{ID: "u1"}, nil)

	_, token, err := issuer.Register(context.Background(), "Jane", "jane@example.com", "pass1234", "")
	require.NoError(t, err)

	_, err = verifier.CurrentUser(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCurrentUserRejectsExpiredToken(t *testing.T) {
	users := new(mockUserRepo)
	issuer := NewAuthService(users, "secret", -time.Minute)

	users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(&model.User{ID: "u1"}, nil)

	_, token, err := issuer.Register(context.Background(), "Jane", "jane@example.com", "pass1234", "")
	require.NoError(t, err)

	_, err = issuer.CurrentUser(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestForgotThenResetPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	var storedHash string
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&model.User{ID: "u1", Email: "jane@example.com"}, nil)
	users.On("SetResetToken", mock.Anything, "u1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { storedHash = args.String(2) }).
		Return(nil)

	raw, err := svc.ForgotPassword(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.NotEqual(t, raw, storedHash, "raw token must never be stored")
	assert.Equal(t, storedHash, hashResetToken(raw))

	users.On("GetByResetToken", mock.Anything, storedHash).
		Return(&model.User{ID: "u1"}, nil)
	users.On("UpdatePassword", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)
	users.On("GetByID", mock.Anything, "u1").Return(&model.User{ID: "u1"}, nil)

	user, err := svc.ResetPassword(context.Background(), raw, "newpass123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestResetPasswordBadToken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("GetByResetToken", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := svc.ResetPassword(context.Background(), "bogus", "newpass123")
	require.ErrorIs(t, err, ErrInvalidResetToken)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, "secret", time.Hour)

	users.On("GetByID", mock.Anything, "u1").
		Return(&model.User{ID: "u1", Password: hashPassword(t, "old-pass")}, nil)

	err := svc.ChangePassword(context.Background(), "u1", "wrong", "new-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
