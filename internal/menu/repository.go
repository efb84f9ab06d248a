package menu

import "context"

// Repository defines all database operations for menus.
type Repository interface {
	Create(ctx context.Context, menu *Menu) error
	Get(ctx context.Context, id int) (*Menu, error)
	List(ctx context.Context, onlyActive bool) ([]*Menu, error)
	Update(ctx context.Context, menu *Menu) error

	// ReplaceDishes swaps the menu's dish set atomically.
	ReplaceDishes(ctx context.Context, menuID int, dishes []MenuDish) error
}
