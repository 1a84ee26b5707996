package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/config"
	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/password"
	"github.com/manemajef/clients-app/internal/repository"
	"github.com/manemajef/clients-app/internal/token"
)

// TokenPair carries the two bearer tokens returned by login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService owns registration, authentication, and principal resolution.
type UserService struct {
	tx     repository.Tx
	users  repository.UserRepository
	hasher *password.Hasher
	tokens *token.Issuer
	cfg    config.Config
	logger *zap.Logger
}

// NewUserService wires the user service.
func NewUserService(
	txm repository.Tx,
	users repository.UserRepository,
	hasher *password.Hasher,
	tokens *token.Issuer,
	cfg config.Config,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		tx:     txm,
		users:  users,
		hasher: hasher,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// Register creates a new user. Email must not already be registered; the
// duplicate case fails with ErrConflict before any write. The insert still
// runs under the unique constraint, so a concurrent duplicate also surfaces
// as ErrConflict at commit time.
func (s *UserService) Register(ctx context.Context, email, fullName, plain string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("register: email: %w", domain.ErrInvalidInput)
	}
	if plain == "" {
		return domain.User{}, fmt.Errorf("register: password: %w", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, fmt.Errorf("register %q: %w", email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	var created domain.User
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		created, err = s.users.WithTx(tx).Create(ctx, domain.User{
			Email:        email,
			FullName:     strings.TrimSpace(fullName),
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", created.ID))
	return created, nil
}

// Authenticate checks credentials. A missing account and a wrong password
// are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, plain string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthenticated
		}
		return domain.User{}, err
	}
	if !s.hasher.Verify(plain, user.PasswordHash) {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return user, nil
}

// Login authenticates and issues an access/refresh token pair.
func (s *UserService) Login(ctx context.Context, email, plain string) (TokenPair, error) {
	user, err := s.Authenticate(ctx, email, plain)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.tokens.IssueAccess(user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented refresh token is not invalidated; it stays valid until its own
// expiry.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.RotateFromRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}
	return access, nil
}

// GetByToken resolves an access token to its user. An invalid token fails
// with ErrUnauthenticated; a valid token whose account no longer exists
// fails with ErrNotFound.
func (s *UserService) GetByToken(ctx context.Context, accessToken string) (domain.User, error) {
	subject, err := s.tokens.DecodeAccess(accessToken)
	if err != nil {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return s.users.GetByEmail(ctx, subject)
}

// GetByID loads a user by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetAll lists every user. Reserved for the admin surface.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}
