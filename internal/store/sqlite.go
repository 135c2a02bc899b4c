package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/vmihailenco/msgpack/v5"
)

var _ club.Repository = (*SQLStore)(nil)

// NewSQL returns a repository backed by a migrated database.
func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load reads every collection that has been saved at least once. Collections
// that were never saved are returned as nil.
func (s *SQLStore) Load(ctx context.Context) (club.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved, err := s.savedBlobs(ctx)
	if err != nil {
		return club.State{}, err
	}

	var state club.State
	if saved[blobRoster] {
		if state.Members, err = s.loadMembers(ctx); err != nil {
			return club.State{}, err
		}
	}
	if saved[blobLedger] {
		if state.Matches, err = s.loadMatches(ctx); err != nil {
			return club.State{}, err
		}
	}
	if saved[blobAttendance] {
		if state.Attendance, err = s.loadAttendance(ctx); err != nil {
			return club.State{}, err
		}
	}

	log.Debug("Loaded club state from database", "members", len(state.Members), "matches", len(state.Matches))
	return state, nil
}

// Save replaces the stored collections with state in one transaction.
func (s *SQLStore) Save(ctx context.Context, state club.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveMembers(ctx, tx, state.Members); err != nil {
		return err
	}
	if err := saveMatches(ctx, tx, state.Matches); err != nil {
		return err
	}
	if err := saveAttendance(ctx, tx, state.Attendance); err != nil {
		return err
	}
	for _, blob := range []string{blobRoster, blobLedger, blobAttendance} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, 'saved')
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, blob); err != nil {
			return fmt.Errorf("failed to mark %s as saved: %w", blob, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit club state: %w", err)
	}
	return nil
}

func (s *SQLStore) savedBlobs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM settings WHERE value = 'saved'`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	saved := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		saved[key] = true
	}
	return saved, rows.Err()
}

func (s *SQLStore) loadMembers(ctx context.Context) ([]club.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, gender, wins, losses, draws, win_rate, points
		FROM members ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := make([]club.Member, 0)
	for rows.Next() {
		var m club.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Gender, &m.Wins, &m.Losses, &m.Draws, &m.WinRate, &m.Points); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *SQLStore) loadMatches(ctx context.Context) ([]club.MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, winner_ids, loser_ids, score, match_type, court_type, court_name, is_draw
		FROM matches ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]club.MatchResult, 0)
	for rows.Next() {
		var (
			m                     club.MatchResult
			winnerBlob, loserBlob []byte
		)
		if err := rows.Scan(&m.ID, &m.Date, &winnerBlob, &loserBlob, &m.Score, &m.MatchType, &m.CourtType, &m.CourtName, &m.IsDraw); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := msgpack.Unmarshal(winnerBlob, &m.WinnerIDs); err != nil {
			return nil, fmt.Errorf("failed to decode winners of match %s: %w", m.ID, err)
		}
		if err := msgpack.Unmarshal(loserBlob, &m.LoserIDs); err != nil {
			return nil, fmt.Errorf("failed to decode losers of match %s: %w", m.ID, err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *SQLStore) loadAttendance(ctx context.Context) (club.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, member_id FROM attendance ORDER BY date, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	attendance := make(club.Attendance)
	for rows.Next() {
		var date, memberID string
		if err := rows.Scan(&date, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendance[date] = append(attendance[date], memberID)
	}
	return attendance, rows.Err()
}

func saveMembers(ctx context.Context, tx *sql.Tx, members []club.Member) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM members`); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (id, position, name, gender, wins, losses, draws, win_rate, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare member insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range members {
		if _, err := stmt.ExecContext(ctx, m.ID, i, m.Name, string(m.Gender), m.Wins, m.Losses, m.Draws, m.WinRate, m.Points); err != nil {
			return fmt.Errorf("failed to insert member %s: %w", m.ID, err)
		}
	}
	return nil
}

func saveMatches(ctx context.Context, tx *sql.Tx, matches []club.MatchResult) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (id, position, date, winner_ids, loser_ids, score, match_type, court_type, court_name, is_draw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range matches {
		winnerBlob, err := msgpack.Marshal(m.WinnerIDs)
		if err != nil {
			return fmt.Errorf("failed to encode winners of match %s: %w", m.ID, err)
		}
		loserBlob, err := msgpack.Marshal(m.LoserIDs)
		if err != nil {
			return fmt.Errorf("failed to encode losers of match %s: %w", m.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, m.ID, i, m.Date, winnerBlob, loserBlob, m.Score,
			string(m.MatchType), string(m.CourtType), m.CourtName, m.IsDraw); err != nil {
			return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
		}
	}
	return nil
}

func saveAttendance(ctx context.Context, tx *sql.Tx, attendance club.Attendance) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance`); err != nil {
		return fmt.Errorf("failed to clear attendance: %w", err)
	}
	for date, ids := range attendance {
		for i, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO attendance (date, position, member_id) VALUES (?, ?, ?)`, date, i, id); err != nil {
				return fmt.Errorf("failed to insert attendance for %s: %w", date, err)
			}
		}
	}
	return nil
}
