package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
)

const resetTokenTTL = 30 * time.Minute

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID, name, avatar string) error
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	SetResetToken(ctx context.Context, userID, hashedToken string, expireAt time.Time) error
	GetByResetToken(ctx context.Context, hashedToken string) (*model.User, error)
	UpdateRole(ctx context.Context, userID string, role model.Role) error
	Delete(ctx context.Context, userID string) error
	FindAll(ctx context.Context, skip, limit int64) ([]*model.User, int64, error)
}

// AuthService issues and verifies HS256 access tokens and owns the password
// lifecycle.
type AuthService struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

func (a *AuthService) Register(ctx context.Context, name, email, password, avatar string) (*model.User, string, error) {
	email = strings.ToLower(email)

	exists, err := a.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := a.users.Create(ctx, &model.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Avatar:    avatar,
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Printf("user %s registered", user.ID)
	return user, token, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser resolves a bearer token to its account.
func (a *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, err := a.verifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return user, err
}

func (a *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return a.users.UpdatePassword(ctx, userID, string(hashed))
}

// ForgotPassword stores a hashed reset token and returns the raw one. The
// caller delivers it; email is out of scope here.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	expireAt := time.Now().UTC().Add(resetTokenTTL)
	if err := a.users.SetResetToken(ctx, user.ID, hashResetToken(token), expireAt); err != nil {
		return "", err
	}

	log.Printf("password reset token generated for user %s", user.ID)
	return token, nil
}

func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error) {
	user, err := a.users.GetByResetToken(ctx, hashResetToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidResetToken
	}
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := a.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return nil, err
	}
	return a.users.GetByID(ctx, user.ID)
}

func (a *AuthService) issueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) verifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Stored reset tokens are hashed so a leaked users collection can't be used
// to take over accounts.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
