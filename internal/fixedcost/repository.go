package fixedcost

import (
	"context"
	"time"
)

// Repository defines all database operations for fixed-cost versions.
type Repository interface {
	Create(ctx context.Context, v *Version) error
	Get(ctx context.Context, id int) (*Version, error)
	List(ctx context.Context) ([]*Version, error)

	// ActiveVersion returns (nil, nil) when no version is active.
	ActiveVersion(ctx context.Context) (*Version, error)

	// VersionCovering returns the version whose range contains the day,
	// or (nil, nil) when none does.
	VersionCovering(ctx context.Context, day time.Time) (*Version, error)

	Update(ctx context.Context, v *Version) error

	// CloseAndActivate closes the previously active version (when
	// closeID is non-nil) and opens the new one in a single transaction,
	// so there is no observable window with zero or two active versions.
	CloseAndActivate(ctx context.Context, closeID *int, closeTo time.Time, openID int, openFrom time.Time) error
}
