package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, login, password_hash, name, email, role, created_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, name, email, role) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := *user
	if created.Role == "" {
		created.Role = model.RoleUser
	}
	err := r.storage.pool.QueryRow(ctx, query, created.Login, created.PasswordHash, created.Name, created.Email, created.Role).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
