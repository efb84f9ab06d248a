package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guarderia/internal/faults"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, menu *Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO menus (name, description, price, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, menu.Name, menu.Description, menu.Price, menu.Active).Scan(&menu.ID, &menu.CreatedAt)
	if err != nil {
		return err
	}

	for _, md := range menu.Dishes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_dishes (menu_id, dish_id, position, is_main)
			VALUES ($1, $2, $3, $4)
		`, menu.ID, md.DishID, md.Position, md.IsMain); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Menu, error) {
	var m Menu
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, photo_url, active, created_at
		FROM menus
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.PhotoURL, &m.Active, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("menu %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT dish_id, position, is_main
		FROM menu_dishes
		WHERE menu_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var md MenuDish
		if err := rows.Scan(&md.DishID, &md.Position, &md.IsMain); err != nil {
			return nil, err
		}
		m.Dishes = append(m.Dishes, md)
	}
	return &m, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context, onlyActive bool) ([]*Menu, error) {
	query := `
		SELECT id, name, description, price, photo_url, active, created_at
		FROM menus
	`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.PhotoURL, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range menus {
		full, err := r.Get(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.Dishes = full.Dishes
	}
	return menus, nil
}

func (r *PostgresRepository) Update(ctx context.Context, menu *Menu) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menus
		SET name = $1, description = $2, price = $3, photo_url = $4, active = $5
		WHERE id = $6
	`, menu.Name, menu.Description, menu.Price, menu.PhotoURL, menu.Active, menu.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("menu %d not found", menu.ID)
	}
	return nil
}

func (r *PostgresRepository) ReplaceDishes(ctx context.Context, menuID int, dishes []MenuDish) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM menu_dishes WHERE menu_id = $1`, menuID); err != nil {
		return err
	}

	for _, md := range dishes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_dishes (menu_id, dish_id, position, is_main)
			VALUES ($1, $2, $3, $4)
		`, menuID, md.DishID, md.Position, md.IsMain); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
