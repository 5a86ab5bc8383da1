package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
	"github.com/yourname/healthcoach/internal/storage/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteStorage is a single-file embedded backend.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

// NewSQLiteStorage opens or creates the database at path. Pass ":memory:"
// for a throwaway database.
func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create db dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	// Single connection avoids "database is locked" and keeps :memory: shared.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db, migrations.SQLite, "sqlite3", "sqlite"); err != nil {
		db.Close()
		logger.Errorf("failed to migrate schema: %v", err)
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) GetRow(ctx context.Context, userID uint64) (codec.Row, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE user_id = ?`, int64(userID))
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return codec.Row{}, fmt.Errorf("storage: user %d: %w", userID, internal.ErrNotFound)
	}
	if err != nil {
		s.logger.Errorf("failed to query user %d: %v", userID, err)
		return codec.Row{}, err
	}
	return r, nil
}

func (s *SQLiteStorage) PutRow(ctx context.Context, r codec.Row) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO health_users (user_id, name, weight, height, goal, reminders, progress,
		feedback, conversation, water_log, sleep_log, calorie_log, workout_log, stress_log)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name, weight = excluded.weight, height = excluded.height,
			goal = excluded.goal, reminders = excluded.reminders, progress = excluded.progress,
			feedback = excluded.feedback, conversation = excluded.conversation,
			water_log = excluded.water_log, sleep_log = excluded.sleep_log,
			calorie_log = excluded.calorie_log, workout_log = excluded.workout_log,
			stress_log = excluded.stress_log`,
		int64(r.UserID), r.Name, r.Weight, r.Height, r.Goal, r.Reminders, r.Progress, r.Feedback,
		r.Conversation, r.WaterLog, r.SleepLog, r.CalorieLog, r.WorkoutLog, r.StressLog)
	if err != nil {
		s.logger.Errorf("failed to upsert user %d: %v", r.UserID, err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) ListRows(ctx context.Context) ([]codec.Row, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY user_id`)
	if err != nil {
		s.logger.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []codec.Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- Compile-time assertions ---
var _ RowRepository = (*SQLiteStorage)(nil)
