// Package auth_repo provides the PostgreSQL implementation of the user
// account repository.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain/account"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const userTable = "users"

var userColumns = []string{"id", "email", "password_hash", "full_name", "role"}

// UserRepo implements account.Repository.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

var _ account.Repository = (*UserRepo)(nil)

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new user and fills in the generated ID.
func (r *UserRepo) Create(ctx context.Context, u *account.User) error {
	q := r.builder().
		Insert(userTable).
		Columns("email", "password_hash", "full_name", "role").
		Values(u.Email, u.PasswordHash, u.FullName, u.Role).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&u.ID); err != nil {
		return fmt.Errorf("insert %s: %w", userTable, err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*account.User, error) {
	q := r.builder().
		Select(userColumns...).
		From(userTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u account.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", id)
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	q := r.builder().
		Select(userColumns...).
		From(userTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u account.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get by email: %w", err)
	}
	return &u, nil
}

// Exists reports whether a user with the email exists.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	q := r.builder().
		Select("1").
		From(userTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// Update modifies an existing user.
func (r *UserRepo) Update(ctx context.Context, u *account.User) error {
	q := r.builder().
		Update(userTable).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("full_name", u.FullName).
		Set("role", u.Role).
		Where(squirrel.Eq{"id": u.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", userTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", u.ID)
	}
	return nil
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	q := r.builder().
		Select("COUNT(*)").
		From(userTable)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
