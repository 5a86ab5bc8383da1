package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
	"github.com/yourname/healthcoach/internal/storage/migrations"
)

const selectColumns = `SELECT user_id, name, weight, height, goal, reminders, progress, feedback,
	conversation, water_log, sleep_log, calorie_log, workout_log, stress_log FROM health_users`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	err = runMigrations(ctx, db, migrations.Postgres, "pgx", "postgres")
	_ = db.Close()
	if err != nil {
		pool.Close()
		logger.Errorf("failed to migrate schema: %v", err)
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) GetRow(ctx context.Context, userID uint64) (codec.Row, error) {
	row := p.pool.QueryRow(ctx, selectColumns+` WHERE user_id = $1`, int64(userID))
	r, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return codec.Row{}, fmt.Errorf("storage: user %d: %w", userID, internal.ErrNotFound)
	}
	if err != nil {
		p.logger.Errorf("failed to query user %d: %v", userID, err)
		return codec.Row{}, err
	}
	return r, nil
}

func (p *PostgresStorage) PutRow(ctx context.Context, r codec.Row) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO health_users (user_id, name, weight, height, goal, reminders, progress,
		feedback, conversation, water_log, sleep_log, calorie_log, workout_log, stress_log)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, weight = EXCLUDED.weight, height = EXCLUDED.height,
			goal = EXCLUDED.goal, reminders = EXCLUDED.reminders, progress = EXCLUDED.progress,
			feedback = EXCLUDED.feedback, conversation = EXCLUDED.conversation,
			water_log = EXCLUDED.water_log, sleep_log = EXCLUDED.sleep_log,
			calorie_log = EXCLUDED.calorie_log, workout_log = EXCLUDED.workout_log,
			stress_log = EXCLUDED.stress_log`,
		int64(r.UserID), r.Name, r.Weight, r.Height, r.Goal, r.Reminders, r.Progress, r.Feedback,
		r.Conversation, r.WaterLog, r.SleepLog, r.CalorieLog, r.WorkoutLog, r.StressLog)
	if err != nil {
		p.logger.Errorf("failed to upsert user %d: %v", r.UserID, err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListRows(ctx context.Context) ([]codec.Row, error) {
	rows, err := p.pool.Query(ctx, selectColumns+` ORDER BY user_id`)
	if err != nil {
		p.logger.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []codec.Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// scanner is satisfied by pgx rows as well as database/sql rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(row scanner) (codec.Row, error) {
	var (
		r  codec.Row
		id int64
	)
	err := row.Scan(&id, &r.Name, &r.Weight, &r.Height, &r.Goal, &r.Reminders, &r.Progress, &r.Feedback,
		&r.Conversation, &r.WaterLog, &r.SleepLog, &r.CalorieLog, &r.WorkoutLog, &r.StressLog)
	r.UserID = uint64(id)
	return r, err
}

// --- Compile-time assertions ---
var _ RowRepository = (*PostgresStorage)(nil)
