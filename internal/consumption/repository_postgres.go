package consumption

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"guarderia/internal/faults"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, con *Consumption) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO menu_consumptions (child_id, menu_id, day, billed_cost, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, con.ChildID, con.MenuID, con.Day, con.BilledCost, con.Notes).Scan(&con.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return faults.Conflictf("consumption already recorded for child %d on %s",
			con.ChildID, con.Day.Format("2006-01-02"))
	}
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Consumption, error) {
	var con Consumption
	err := r.db.QueryRow(ctx, `
		SELECT id, child_id, menu_id, day, billed_cost, notes
		FROM menu_consumptions
		WHERE id = $1
	`, id).Scan(&con.ID, &con.ChildID, &con.MenuID, &con.Day, &con.BilledCost, &con.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("consumption %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &con, nil
}

func (r *PostgresRepository) Update(ctx context.Context, con *Consumption) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_consumptions
		SET menu_id = $1, billed_cost = $2, notes = $3
		WHERE id = $4
	`, con.MenuID, con.BilledCost, con.Notes, con.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("consumption %d not found", con.ID)
	}
	return nil
}

func (r *PostgresRepository) ListMonth(ctx context.Context, childID, month, year int) ([]*Consumption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, child_id, menu_id, day, billed_cost, notes
		FROM menu_consumptions
		WHERE child_id = $1
		  AND EXTRACT(MONTH FROM day) = $2
		  AND EXTRACT(YEAR FROM day) = $3
		ORDER BY day
	`, childID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consumptions []*Consumption
	for rows.Next() {
		var con Consumption
		if err := rows.Scan(&con.ID, &con.ChildID, &con.MenuID, &con.Day, &con.BilledCost, &con.Notes); err != nil {
			return nil, err
		}
		consumptions = append(consumptions, &con)
	}
	return consumptions, rows.Err()
}

func (r *PostgresRepository) SumBilled(ctx context.Context, childID, month, year int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(billed_cost), 0)
		FROM menu_consumptions
		WHERE child_id = $1
		  AND EXTRACT(MONTH FROM day) = $2
		  AND EXTRACT(YEAR FROM day) = $3
	`, childID, month, year).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
