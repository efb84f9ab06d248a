package fixedcost

import (
	"time"

	"github.com/shopspring/decimal"
)

// Version is one time-ranged value of the recurring facility fee.
// ValidTo is nil while the version is open-ended; at most one version is
// active at any instant.
type Version struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidTo     *time.Time      `json:"valid_to"`
	Active      bool            `json:"active"`
	Description string          `json:"description"`
}

// Covers reports whether the version's validity range contains the day.
func (v *Version) Covers(day time.Time) bool {
	if day.Before(v.ValidFrom) {
		return false
	}
	if v.ValidTo == nil {
		return true
	}
	return !day.After(*v.ValidTo)
}
