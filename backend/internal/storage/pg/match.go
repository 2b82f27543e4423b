package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	shared_pg "github.com/padel-tracker/padel/shared/storage/pg"
)

var errMatchNotFound = internal_errors.NotFound("Match not found")

const matchColumns = "id, date, team1_players, team2_players, sets, notes, created_by, created_at"

// =========================================================================
// Public Methods (satisfy the service.MatchStorage interface)
// Every read returns matches with players and creator populated.
// =========================================================================

func (s *Storage) CreateMatch(ctx context.Context, match domain.Match) (domain.Match, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var created domain.Match
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.lockPlayers(ctx, tx, match.AllPlayers()); err != nil {
			return err
		}
		var err error
		created, err = s.createMatch(ctx, tx, match)
		if err != nil {
			return err
		}
		return s.populateMatches(ctx, tx, []*domain.Match{&created})
	})
	return created, err
}

func (s *Storage) Match(ctx context.Context, id domain.MatchId) (domain.Match, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	match, err := scanMatch(s.db.QueryRowContext(ctx, "SELECT "+matchColumns+" FROM matches WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Match{}, errMatchNotFound
	}
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to query match: %w", err)
	}
	if err := s.populateMatches(ctx, s.db, []*domain.Match{&match}); err != nil {
		return domain.Match{}, err
	}
	return match, nil
}

// Matches lists all matches, most recent date first.
func (s *Storage) Matches(ctx context.Context) ([]domain.Match, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.queryMatches(ctx, s.db, "SELECT "+matchColumns+" FROM matches ORDER BY date DESC, created_at DESC")
}

// MatchesByPlayer lists matches where the player is on either team.
func (s *Storage) MatchesByPlayer(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.queryMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches
		WHERE $1::uuid = ANY(team1_players) OR $1::uuid = ANY(team2_players)
		ORDER BY date DESC, created_at DESC`, playerId)
}

func (s *Storage) UpdateMatch(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var updated domain.Match
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var team1, team2 pq.StringArray
		if data.Team1Players != nil {
			team1 = uuidArray(*data.Team1Players)
		}
		if data.Team2Players != nil {
			team2 = uuidArray(*data.Team2Players)
		}
		if data.TouchesTeams() {
			refs := []domain.PlayerId{}
			if data.Team1Players != nil {
				refs = append(refs, *data.Team1Players...)
			}
			if data.Team2Players != nil {
				refs = append(refs, *data.Team2Players...)
			}
			if err := s.lockPlayers(ctx, tx, refs); err != nil {
				return err
			}
		}

		var sets []byte
		if data.Sets != nil {
			var err error
			if sets, err = json.Marshal(*data.Sets); err != nil {
				return fmt.Errorf("failed to encode sets: %w", err)
			}
		}
		var notes string
		if data.Notes != nil {
			notes = *data.Notes
		}

		var err error
		updated, err = scanMatch(tx.QueryRowContext(ctx, `
			UPDATE matches SET
				date          = COALESCE($2, date),
				team1_players = COALESCE($3::uuid[], team1_players),
				team2_players = COALESCE($4::uuid[], team2_players),
				sets          = COALESCE($5::jsonb, sets),
				notes         = CASE WHEN $6::boolean THEN NULLIF($7::text, '') ELSE notes END
			WHERE id = $1
			RETURNING `+matchColumns,
			id, data.Date, team1, team2, nullableJSON(sets), data.Notes != nil, notes,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return errMatchNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update match: %w", err)
		}
		return s.populateMatches(ctx, tx, []*domain.Match{&updated})
	})
	return updated, err
}

func (s *Storage) DeleteMatch(ctx context.Context, id domain.MatchId) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errMatchNotFound
	}
	return nil
}

// =========================================================================
// Internal Methods (transaction-agnostic)
// =========================================================================

func (s *Storage) createMatch(ctx context.Context, q Querier, match domain.Match) (domain.Match, error) {
	sets, err := json.Marshal(match.Sets)
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to encode sets: %w", err)
	}
	created, err := scanMatch(q.QueryRowContext(ctx, `
		INSERT INTO matches(id, date, team1_players, team2_players, sets, notes, created_by)
		VALUES($1, $2, $3::uuid[], $4::uuid[], $5::jsonb, $6, $7)
		RETURNING `+matchColumns,
		uuid.New(), match.Date, uuidArray(match.Team1Players), uuidArray(match.Team2Players), string(sets), match.Notes, match.CreatedBy,
	))
	if shared_pg.IsForeignKeyViolation(err, "matches_created_by_fkey") {
		return domain.Match{}, internal_errors.ErrUnknownSubject
	}
	if err != nil {
		return domain.Match{}, fmt.Errorf("failed to insert match: %w", err)
	}
	return created, nil
}

// lockPlayers share-locks the referenced players for the rest of the
// transaction so they cannot be deleted underneath a new reference.
func (s *Storage) lockPlayers(ctx context.Context, q Querier, ids []domain.PlayerId) error {
	rows, err := q.QueryContext(ctx, "SELECT id FROM players WHERE id = ANY($1::uuid[]) FOR SHARE", uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to lock players: %w", err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		found++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock players: %w", err)
	}
	if found < len(ids) {
		return internal_errors.ErrUnknownPlayer
	}
	return nil
}

func (s *Storage) queryMatches(ctx context.Context, q Querier, query string, args ...any) ([]domain.Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	ptrs := make([]*domain.Match, len(matches))
	for i := range matches {
		ptrs[i] = &matches[i]
	}
	if err := s.populateMatches(ctx, q, ptrs); err != nil {
		return nil, err
	}
	return matches, nil
}

func scanMatch(row rowScanner) (domain.Match, error) {
	var m domain.Match
	var team1, team2 pq.StringArray
	var sets []byte
	var notes sql.NullString
	if err := row.Scan(&m.Id, &m.Date, &team1, &team2, &sets, &notes, &m.CreatedBy, &m.CreatedAt); err != nil {
		return domain.Match{}, err
	}

	var err error
	if m.Team1Players, err = parseUUIDs(team1); err != nil {
		return domain.Match{}, err
	}
	if m.Team2Players, err = parseUUIDs(team2); err != nil {
		return domain.Match{}, err
	}
	if err := json.Unmarshal(sets, &m.Sets); err != nil {
		return domain.Match{}, fmt.Errorf("failed to decode sets: %w", err)
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	m.Date = m.Date.UTC()
	return m, nil
}

// jsonb parameters are sent as text
func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
