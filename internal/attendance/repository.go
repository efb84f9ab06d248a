package attendance

import (
	"context"
	"time"
)

// Repository defines all database operations for attendance records.
type Repository interface {
	// Create persists a record; a second record for the same (child, day)
	// is a conflict.
	Create(ctx context.Context, rec *Record) error

	ListMonth(ctx context.Context, childID, month, year int) ([]*Record, error)
	CountAttended(ctx context.Context, childID, month, year int) (int, error)
	Exists(ctx context.Context, childID int, day time.Time) (bool, error)
}
