package storage

import (
	"context"

	"github.com/yourname/healthcoach/internal/codec"
)

// RowRepository persists user rows in their encoded text form. GetRow
// returns internal.ErrNotFound for unknown users; every write is durable
// once PutRow returns.
type RowRepository interface {
	GetRow(ctx context.Context, userID uint64) (codec.Row, error)
	PutRow(ctx context.Context, row codec.Row) error
	ListRows(ctx context.Context) ([]codec.Row, error)
	Close() error
}
