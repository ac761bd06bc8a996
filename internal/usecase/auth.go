package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/repository"
	pkgAuth "github.com/polkiloo/furnirent/internal/pkg/auth"
)

// Registration carries sign-up data of a renter.
type Registration struct {
	Login    string
	Password string
	Name     string
	Email    string
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	logger *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, logger: logger}
}

// Register creates a new renter account and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, in Registration) (*model.User, string, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.create(ctx, &model.User{
		Login: login,
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Role:  model.RoleUser,
	}, in.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the caller identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Identity{}, err
	}

	role := model.Role(claims.Role)
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	return model.Identity{UserID: claims.UserID, Role: role}, nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// EnsureAdmin creates the administrator account unless the login is taken.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return domainErrors.ErrInvalidCredentials
	}

	existing, err := u.users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			u.logger.Warn("admin login is taken by a renter account", slog.String("login", login))
		}
		return nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return err
	}

	admin, err := u.create(ctx, &model.User{Login: login, Name: login, Role: model.RoleAdmin}, password)
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	u.logger.Info("administrator account created", slog.Int64("user_id", admin.ID), slog.String("login", login))
	return nil
}

func (u *AuthUseCase) create(ctx context.Context, usr *model.User, password string) (*model.User, error) {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	usr.PasswordHash = hash

	created, err := u.users.Create(ctx, usr)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
}
