package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
)

var (
	errPlayerNotFound   = internal_errors.NotFound("Player not found")
	errPlayerReferenced = internal_errors.Conflict("Player is referenced by existing matches")
)

const playerColumns = "id, first_name, last_name, age, nationality, image_url, created_at"

// =========================================================================
// Public Methods (satisfy the service.PlayerStorage interface)
// =========================================================================

func (s *Storage) CreatePlayer(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.createPlayer(ctx, s.db, data)
}

func (s *Storage) Player(ctx context.Context, id domain.PlayerId) (domain.Player, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	player, err := scanPlayer(s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, errPlayerNotFound
	}
	return player, err
}

// Players lists all players, newest first.
func (s *Storage) Players(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+playerColumns+" FROM players ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	return collectPlayers(rows)
}

// PlayersByIds returns the players that exist among ids, in no particular order.
func (s *Storage) PlayersByIds(ctx context.Context, ids []domain.PlayerId) ([]domain.Player, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.playersByIds(ctx, s.db, ids)
}

func (s *Storage) UpdatePlayer(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var imageUrl string
	if data.ImageUrl != nil {
		imageUrl = *data.ImageUrl
	}
	player, err := scanPlayer(s.db.QueryRowContext(ctx, `
		UPDATE players SET
			first_name  = COALESCE($2, first_name),
			last_name   = COALESCE($3, last_name),
			age         = COALESCE($4::integer, age),
			nationality = COALESCE($5, nationality),
			image_url   = CASE WHEN $6::boolean THEN NULLIF($7::text, '') ELSE image_url END
		WHERE id = $1
		RETURNING `+playerColumns,
		id, data.FirstName, data.LastName, data.Age, data.Nationality, data.ImageUrl != nil, imageUrl,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, errPlayerNotFound
	}
	return player, err
}

// DeletePlayer refuses to delete a player that any match still references.
func (s *Storage) DeletePlayer(ctx context.Context, id domain.PlayerId) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		// lock the row so a concurrent delete sees a consistent answer
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx, "SELECT id FROM players WHERE id = $1 FOR UPDATE", id).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return errPlayerNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock player: %w", err)
		}

		var referenced bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM matches
				WHERE $1::uuid = ANY(team1_players) OR $1::uuid = ANY(team2_players)
			)`, id).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("failed to check player references: %w", err)
		}
		if referenced {
			return errPlayerReferenced
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = $1", id); err != nil {
			return fmt.Errorf("failed to delete player: %w", err)
		}
		return nil
	})
}

// =========================================================================
// Internal Methods (transaction-agnostic)
// =========================================================================

func (s *Storage) createPlayer(ctx context.Context, q Querier, data domain.PlayerCreationData) (domain.Player, error) {
	player, err := scanPlayer(q.QueryRowContext(ctx, `
		INSERT INTO players(id, first_name, last_name, age, nationality, image_url)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING `+playerColumns,
		uuid.New(), data.FirstName, data.LastName, data.Age, data.Nationality, data.ImageUrl,
	))
	if err != nil {
		return domain.Player{}, fmt.Errorf("failed to insert player: %w", err)
	}
	return player, nil
}

func (s *Storage) playersByIds(ctx context.Context, q Querier, ids []domain.PlayerId) ([]domain.Player, error) {
	if len(ids) == 0 {
		return []domain.Player{}, nil
	}
	rows, err := q.QueryContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE id = ANY($1::uuid[])",
		uuidArray(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by ids: %w", err)
	}
	return collectPlayers(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (domain.Player, error) {
	var p domain.Player
	var imageUrl sql.NullString
	if err := row.Scan(&p.Id, &p.FirstName, &p.LastName, &p.Age, &p.Nationality, &imageUrl, &p.CreatedAt); err != nil {
		return domain.Player{}, err
	}
	if imageUrl.Valid {
		p.ImageUrl = &imageUrl.String
	}
	return p, nil
}

func collectPlayers(rows *sql.Rows) ([]domain.Player, error) {
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return players, nil
}
