package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// TimeFormat is the fixed UTC layout used for every timestamp column.
// Lexical order matches chronological order, so expiry comparisons can be
// done directly in SQL.
const TimeFormat = "2006-01-02 15:04:05"

// Clock supplies the current time. Injected so tests can pin it.
type Clock func() time.Time

// Store wraps the ledger database. All reads and writes go through it;
// callers never see raw rows.
type Store struct {
	db  *sqlx.DB
	now Clock
}

// New creates a Store around an initialized database handle.
func New(db *sqlx.DB, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{db: db, now: clock}
}

// DB exposes the underlying handle for diagnostics.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(TimeFormat)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Init opens the database and ensures all necessary tables are created.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	usersSchema := `CREATE TABLE IF NOT EXISTS users (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          discord_id TEXT UNIQUE,
	          mindustry_id TEXT UNIQUE,
	          created_at TEXT NOT NULL
	      );`
	if _, err := db.Exec(usersSchema); err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	ticketsSchema := `CREATE TABLE IF NOT EXISTS tickets (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          user_id INTEGER NOT NULL,
	          channel_id TEXT NOT NULL UNIQUE,
	          log_message_id TEXT,
	          status TEXT NOT NULL,
	          created_at TEXT NOT NULL,
	          ticket_type TEXT,
	          offender_identifier TEXT,
	          FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	      );`
	if _, err := db.Exec(ticketsSchema); err != nil {
		return nil, fmt.Errorf("failed to create tickets table: %w", err)
	}

	actionsSchema := `CREATE TABLE IF NOT EXISTS user_actions (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          user_id INTEGER NOT NULL,
	          action_type TEXT NOT NULL CHECK(action_type IN (
	              'promotion', 'demotion', 'mute', 'ban',
	              'warn', 'kick', 'voice_mute', 'blacklist'
	          )),
	          performed_by INTEGER NOT NULL,
	          ticket_id INTEGER,
	          log_message_id TEXT,
	          role TEXT,
	          reason TEXT,
	          time TEXT NOT NULL,
	          duration_seconds INTEGER,
	          expires_at TEXT,
	          is_active INTEGER NOT NULL DEFAULT 1,
	          revoked_by INTEGER,
	          revocation_reason TEXT,
	          revocation_time TEXT,
	          FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
	          FOREIGN KEY (performed_by) REFERENCES users (id) ON DELETE SET NULL,
	          FOREIGN KEY (revoked_by) REFERENCES users (id) ON DELETE SET NULL,
	          FOREIGN KEY (ticket_id) REFERENCES tickets (id) ON DELETE SET NULL
	      );`
	if _, err := db.Exec(actionsSchema); err != nil {
		return nil, fmt.Errorf("failed to create user_actions table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_discord_id ON users(discord_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_mindustry_id ON users(mindustry_id)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_user_id ON user_actions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_channel_id ON tickets(channel_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	}

	return db, nil
}
