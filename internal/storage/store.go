package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
)

// Store is the only writer of user records. It decodes rows from a
// RowRepository and serializes every read-modify-write per user id; work on
// different users runs in parallel.
type Store struct {
	repo   RowRepository
	locks  *keyLock
	logger internal.Logger
}

func NewStore(repo RowRepository, logger internal.Logger) *Store {
	return &Store{repo: repo, locks: newKeyLock(), logger: logger}
}

// Get returns the user's record and the number of stored tokens that could
// not be decoded and were left out.
func (s *Store) Get(ctx context.Context, userID uint64) (*internal.UserRecord, int, error) {
	row, err := s.repo.GetRow(ctx, userID)
	if err != nil {
		return nil, 0, wrapRepoErr(err)
	}
	rec, skipped := codec.DecodeRecord(row)
	if skipped > 0 {
		s.logger.Warnf("storage: user %d has %d malformed entries", userID, skipped)
	}
	return rec, skipped, nil
}

// Upsert replaces the full record, creating it if absent.
func (s *Store) Upsert(ctx context.Context, rec *internal.UserRecord) error {
	s.locks.Lock(rec.UserID)
	defer s.locks.Unlock(rec.UserID)
	return s.put(ctx, rec)
}

// ListAll returns every stored record. Skipped counts are summed.
func (s *Store) ListAll(ctx context.Context) ([]*internal.UserRecord, int, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, 0, wrapRepoErr(err)
	}
	out := make([]*internal.UserRecord, 0, len(rows))
	total := 0
	for _, row := range rows {
		rec, skipped := codec.DecodeRecord(row)
		total += skipped
		out = append(out, rec)
	}
	return out, total, nil
}

// Update runs fn on the user's current record and persists the result while
// holding the user's lock. Unknown users yield internal.ErrNotFound and fn
// is not called. If fn fails nothing is written.
func (s *Store) Update(ctx context.Context, userID uint64, fn func(rec *internal.UserRecord) error) (int, error) {
	return s.mutate(ctx, userID, false, fn)
}

// UpdateOrCreate is Update, starting from an empty record for new users.
func (s *Store) UpdateOrCreate(ctx context.Context, userID uint64, fn func(rec *internal.UserRecord) error) (int, error) {
	return s.mutate(ctx, userID, true, fn)
}

// Export returns the user's row exactly as persisted.
func (s *Store) Export(ctx context.Context, userID uint64) (codec.Row, error) {
	row, err := s.repo.GetRow(ctx, userID)
	if err != nil {
		return codec.Row{}, wrapRepoErr(err)
	}
	return row, nil
}

func (s *Store) Close() error {
	return s.repo.Close()
}

func (s *Store) mutate(ctx context.Context, userID uint64, create bool, fn func(rec *internal.UserRecord) error) (int, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	rec, skipped, err := s.Get(ctx, userID)
	switch {
	case errors.Is(err, internal.ErrNotFound) && create:
		rec, skipped = &internal.UserRecord{UserID: userID}, 0
	case err != nil:
		return 0, err
	}

	if err := fn(rec); err != nil {
		return skipped, err
	}
	rec.UserID = userID
	return skipped, s.put(ctx, rec)
}

func (s *Store) put(ctx context.Context, rec *internal.UserRecord) error {
	if err := s.repo.PutRow(ctx, codec.EncodeRecord(rec)); err != nil {
		s.logger.Errorf("storage: failed to persist user %d: %v", rec.UserID, err)
		return wrapRepoErr(err)
	}
	return nil
}

func wrapRepoErr(err error) error {
	if errors.Is(err, internal.ErrNotFound) || errors.Is(err, internal.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %v", internal.ErrStorage, err)
}
