package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	shared_pg "github.com/padel-tracker/padel/shared/storage/pg"
)

var errUserNotFound = internal_errors.NotFound("User not found")

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a user with a fresh id. A duplicate email is a Conflict.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var saved domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.saveUser(ctx, tx, user)
		return err
	})
	return saved, err
}

func (s *Storage) User(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.user(ctx, s.db, "email", email)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.user(ctx, s.db, "id", id)
}

// SetAdmin grants or revokes the administrator flag. Used by the seed tool.
func (s *Storage) SetAdmin(ctx context.Context, id domain.UserId, admin bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "UPDATE users SET is_admin = $2 WHERE id = $1", id, admin)
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errUserNotFound
	}
	return nil
}

// =========================================================================
// Internal Methods (transaction-agnostic)
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.User, error) {
	user.Id = uuid.New()
	err := q.QueryRowContext(ctx,
		`INSERT INTO users(id, email, password_hash, name, is_admin)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		user.Id, user.Email, user.PassHash, user.Name, user.Admin,
	).Scan(&user.CreatedAt)
	if err != nil {
		if shared_pg.IsUniqueViolation(err, "users_email_key") {
			return domain.User{}, internal_errors.Conflict("User with this email already exists")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// column is a fixed identifier chosen by the caller, never user input
func (s *Storage) user(ctx context.Context, q Querier, column string, value any) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name, is_admin, created_at FROM users WHERE "+column+" = $1",
		value,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.Name, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, errUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) userSummaries(ctx context.Context, q Querier, ids []domain.UserId) (map[domain.UserId]domain.UserSummary, error) {
	out := make(map[domain.UserId]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])",
		uuidArray(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.Id, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		out[u.Id] = u
	}
	return out, rows.Err()
}
