package billing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"guarderia/internal/faults"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const chargeColumns = `id, child_id, payer_id, month, year, fixed_cost, meal_cost, total, generated_at, paid_at, status`

func (r *PostgresRepository) Create(ctx context.Context, charge *Charge) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO monthly_charges
			(child_id, payer_id, month, year, fixed_cost, meal_cost, total, generated_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, charge.ChildID, charge.PayerID, charge.Month, charge.Year,
		charge.FixedCost, charge.MealCost, charge.Total, charge.GeneratedAt, charge.Status,
	).Scan(&charge.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return faults.Conflictf("child %d is already billed for %d/%d", charge.ChildID, charge.Month, charge.Year)
	}
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Charge, error) {
	var ch Charge
	err := r.db.QueryRow(ctx, `
		SELECT `+chargeColumns+`
		FROM monthly_charges
		WHERE id = $1
	`, id).Scan(
		&ch.ID, &ch.ChildID, &ch.PayerID, &ch.Month, &ch.Year,
		&ch.FixedCost, &ch.MealCost, &ch.Total, &ch.GeneratedAt, &ch.PaidAt, &ch.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("charge %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *PostgresRepository) Update(ctx context.Context, charge *Charge) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE monthly_charges
		SET fixed_cost = $1, meal_cost = $2, total = $3, paid_at = $4, status = $5
		WHERE id = $6
	`, charge.FixedCost, charge.MealCost, charge.Total, charge.PaidAt, charge.Status, charge.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("charge %d not found", charge.ID)
	}
	return nil
}

func (r *PostgresRepository) ListForChild(ctx context.Context, childID int) ([]*Charge, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+chargeColumns+`
		FROM monthly_charges
		WHERE child_id = $1
		ORDER BY year, month
	`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*Charge
	for rows.Next() {
		var ch Charge
		if err := rows.Scan(
			&ch.ID, &ch.ChildID, &ch.PayerID, &ch.Month, &ch.Year,
			&ch.FixedCost, &ch.MealCost, &ch.Total, &ch.GeneratedAt, &ch.PaidAt, &ch.Status,
		); err != nil {
			return nil, err
		}
		charges = append(charges, &ch)
	}
	return charges, rows.Err()
}
