package pairs

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS channel_pairs (
	id             TEXT PRIMARY KEY,
	guild_id       TEXT NOT NULL,
	source_channel TEXT NOT NULL,
	target_channel TEXT NOT NULL,
	source_lang    TEXT NOT NULL,
	target_lang    TEXT NOT NULL,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_channel_pairs_guild ON channel_pairs (guild_id);
`

// SQLiteStore persists pairs in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadPairs(ctx context.Context, guildID string) ([]Pair, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, source_channel, target_channel, source_lang, target_lang, created_at
		FROM channel_pairs WHERE guild_id = ? ORDER BY created_at`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pair
	for rows.Next() {
		var p Pair
		var created time.Time
		if err := rows.Scan(&p.ID, &p.GuildID, &p.SourceChannel, &p.TargetChannel,
			&p.SourceLang, &p.TargetLang, &created); err != nil {
			return nil, err
		}
		p.CreatedAt = created
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertPairs(ctx context.Context, guildID string, ps []Pair) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range ps {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO channel_pairs
				(id, guild_id, source_channel, target_channel, source_lang, target_lang, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				source_lang = excluded.source_lang,
				target_lang = excluded.target_lang`,
			p.ID, guildID, p.SourceChannel, p.TargetChannel,
			p.SourceLang, p.TargetLang, p.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeletePairs(ctx context.Context, guildID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, guildID)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM channel_pairs WHERE guild_id = ? AND id IN ("+placeholders+")", args...)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
