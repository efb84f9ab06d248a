package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu is an ordered composition of dishes offered and billed as a unit.
// Position 1 is the main dish.
type Menu struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	PhotoURL    *string         `json:"photo_url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	Dishes      []MenuDish      `json:"dishes"`
}

type MenuDish struct {
	DishID   int  `json:"dish_id"`
	Position int  `json:"position"`
	IsMain   bool `json:"is_main"`
}
