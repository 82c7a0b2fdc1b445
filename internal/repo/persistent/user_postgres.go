package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/andreyxaxa/Image-Gallery/pkg/postgres"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	usersTable = "users"

	// Columns
	userIDColumn        = "id"
	usernameColumn      = "username"
	passwordHashColumn  = "password_hash"
	userCreatedAtColumn = "created_at"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	sql, args, err := r.Builder.
		Select(
			userIDColumn,
			usernameColumn,
			passwordHashColumn,
			userCreatedAtColumn,
		).
		From(usersTable).
		Where(squirrel.Eq{usernameColumn: username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepo - GetByUsername - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var user entity.User
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("UserRepo - GetByUsername: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("UserRepo - GetByUsername - executor.QueryRow: %w", err)
	}

	return &user, nil
}
