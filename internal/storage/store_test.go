package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
	"golang.org/x/sync/errgroup"
)

var today = internal.DateOf(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

type backend struct {
	name string
	open func(t *testing.T) RowRepository
}

func backends() []backend {
	return []backend{
		{"file", func(t *testing.T) RowRepository {
			s, err := NewFileStorage(filepath.Join(t.TempDir(), "users.csv"), internal.NopLogger())
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) RowRepository {
			s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "users.db"), internal.NopLogger())
			require.NoError(t, err)
			return s
		}},
	}
}

func TestStoreGetNotFound(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := NewStore(b.open(t), internal.NopLogger())
			defer s.Close()

			_, _, err := s.Get(context.Background(), 7)
			assert.ErrorIs(t, err, internal.ErrNotFound)

			_, err = s.Update(context.Background(), 7, func(*internal.UserRecord) error {
				t.Fatal("fn must not run for unknown users")
				return nil
			})
			assert.ErrorIs(t, err, internal.ErrNotFound)
		})
	}
}

func TestStoreUpsertAndGet(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore(b.open(t), internal.NopLogger())
			defer s.Close()

			rec := &internal.UserRecord{
				UserID: 1, Name: "Ana", WeightKg: 70, HeightCm: 175, Goal: "fitness",
				Reminders: []string{"walk at 18:00"},
				Workout:   internal.MetricLog{{Date: today, Text: "run"}},
			}
			require.NoError(t, s.Upsert(ctx, rec))

			got, skipped, err := s.Get(ctx, 1)
			require.NoError(t, err)
			assert.Zero(t, skipped)
			assert.Equal(t, "Ana", got.Name)
			assert.Equal(t, 175.0, got.HeightCm)
			assert.Equal(t, rec.Reminders, got.Reminders)
			assert.Equal(t, rec.Workout, got.Workout)

			rec.Name = "Ana B"
			require.NoError(t, s.Upsert(ctx, rec))
			all, _, err := s.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "Ana B", all[0].Name)
		})
	}
}

func TestStoreFnErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewStore(backends()[0].open(t), internal.NopLogger())
	require.NoError(t, s.Upsert(ctx, &internal.UserRecord{UserID: 3, Name: "x"}))

	boom := errors.New("boom")
	_, err := s.Update(ctx, 3, func(rec *internal.UserRecord) error {
		rec.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _, err := s.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}

func TestConcurrentAppendsSurvive(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore(b.open(t), internal.NopLogger())
			defer s.Close()

			const users, perUser = 3, 25
			for u := uint64(1); u <= users; u++ {
				require.NoError(t, s.Upsert(ctx, &internal.UserRecord{UserID: u}))
			}

			var g errgroup.Group
			for u := uint64(1); u <= users; u++ {
				for i := 0; i < perUser; i++ {
					u, amount := u, float64(i+1)
					g.Go(func() error {
						_, err := s.Update(ctx, u, func(rec *internal.UserRecord) error {
							rec.Water = codec.Append(rec.Water, internal.LogEntry{Date: today, Amount: amount})
							return nil
						})
						return err
					})
				}
			}
			require.NoError(t, g.Wait())

			for u := uint64(1); u <= users; u++ {
				rec, _, err := s.Get(ctx, u)
				require.NoError(t, err)
				require.Len(t, rec.Water, perUser)
				var sum float64
				for _, e := range rec.Water {
					sum += e.Amount
				}
				assert.Equal(t, float64(perUser*(perUser+1)/2), sum)
			}
		})
	}
}

func TestStoreSurfacesMalformedCount(t *testing.T) {
	ctx := context.Background()
	repo := backends()[0].open(t)
	require.NoError(t, repo.PutRow(ctx, codec.Row{UserID: 9, WaterLog: "2024-01-01:500;bogus;2024-01-02:x"}))

	s := NewStore(repo, internal.NopLogger())
	rec, skipped, err := s.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Len(t, rec.Water, 1)
}

func TestFileStoragePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "users.csv")

	fs, err := NewFileStorage(path, internal.NopLogger())
	require.NoError(t, err)
	row := codec.Row{UserID: 5, Name: "Bo, Jr.", Conversation: "User: hi\nBot: \"hello\"", WaterLog: "2024-01-01:500"}
	require.NoError(t, fs.PutRow(ctx, row))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	reopened, err := NewFileStorage(path, internal.NopLogger())
	require.NoError(t, err)
	got, err := reopened.GetRow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestFileStorageWriteFailureIsStorageError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStorage(filepath.Join(dir, "users.csv"), internal.NopLogger())
	require.NoError(t, err)

	// a directory squatting on the temp file name makes the rewrite fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "users.csv.tmp"), 0o755))

	err = fs.PutRow(ctx, codec.Row{UserID: 1, Name: "x"})
	assert.ErrorIs(t, err, internal.ErrStorage)

	_, err = fs.GetRow(ctx, 1)
	assert.ErrorIs(t, err, internal.ErrNotFound, "failed write must not stay visible")
}

func TestFileStorageSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	content := "user_id,name,weight,height,goal,reminders,progress,feedback,conversation,water_log,sleep_log,calorie_log,workout_log,stress_log\n" +
		"abc,broken,,,,,,,,,,,,\n" +
		"12,Cy,80,180,fitness,,,,,,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fs, err := NewFileStorage(path, internal.NopLogger())
	require.NoError(t, err)
	rows, err := fs.ListRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cy", rows[0].Name)
}

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("HEALTHCOACH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("HEALTHCOACH_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pg, err := NewPostgresStorage(ctx, dsn, internal.NopLogger())
	require.NoError(t, err)
	defer pg.Close()

	row := codec.Row{UserID: uint64(time.Now().UnixNano()), Name: "pg", StressLog: "2024-01-01:3"}
	require.NoError(t, pg.PutRow(ctx, row))
	got, err := pg.GetRow(ctx, row.UserID)
	require.NoError(t, err)
	assert.Equal(t, row, got)

	_, err = pg.GetRow(ctx, 0)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "users.db")

	s, err := NewSQLiteStorage(path, internal.NopLogger())
	require.NoError(t, err)
	require.NoError(t, s.PutRow(ctx, codec.Row{UserID: 5, Name: "Dee"}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(path, internal.NopLogger())
	require.NoError(t, err)
	defer s.Close()

	var applied int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goose_db_version WHERE version_id = 1`).Scan(&applied))
	assert.Equal(t, 1, applied)

	got, err := s.GetRow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Dee", got.Name)
}
