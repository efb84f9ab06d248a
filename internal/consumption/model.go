package consumption

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption is one child's chosen menu for one day. BilledCost
// snapshots the menu price at recording time; it is re-snapshotted only
// when the menu assignment itself is edited.
type Consumption struct {
	ID         int             `json:"id"`
	ChildID    int             `json:"child_id"`
	MenuID     int             `json:"menu_id"`
	Day        time.Time       `json:"day"`
	BilledCost decimal.Decimal `json:"billed_cost"`
	Notes      string          `json:"notes"`
}
