package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService は AuthServiceImpl を生成する（DI: UserRepository を注入）
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return NewAuthServiceWithCost(userRepo, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost lets tests use a cheaper bcrypt cost.
func NewAuthServiceWithCost(userRepo repository.UserRepository, cost int) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, cost: cost}
}

// HashPassword returns the bcrypt hash of password.
func (s *AuthServiceImpl) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// dummy returns a hash that unknown usernames are compared against, so the
// response time does not reveal whether the account exists.
func (s *AuthServiceImpl) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

// Authenticate はユーザー名とパスワードを検証する
func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := retryRead(ctx, "find user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.FindByUsername(ctx, username)
	})
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		slog.Debug("login failed", "reason", "unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Debug("login failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		slog.Warn("record last login failed", "user_id", user.ID, "error", err)
	}
	slog.Info("admin logged in", "user_id", user.ID)
	return user, nil
}

// EnsureAdmin は管理者が存在しない場合に作成する
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, &ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return false, &ValidationError{Field: "password", Message: "is required"}
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := &model.User{Username: username, PasswordHash: hash, Role: model.RoleAdmin}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			// Another instance created it first.
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	slog.Info("admin user created", "user_id", user.ID, "username", username)
	return true, nil
}

// CurrentUser は ID で管理者を取得する
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, id string) (*model.User, error) {
	return retryRead(ctx, "find user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.FindByID(ctx, id)
	})
}
