package child

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

// --------------------------------------------------
// Payers
// --------------------------------------------------
func (r *PostgresRepository) CreatePayer(ctx context.Context, payer *Payer) error {
	query := `
		INSERT INTO payers (name, email, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		payer.Name, payer.Email, payer.Active,
	).Scan(&payer.ID, &payer.CreatedAt)
}

func (r *PostgresRepository) GetPayer(ctx context.Context, id int) (*Payer, error) {
	query := `
		SELECT id, name, email, active, created_at
		FROM payers
		WHERE id = $1
	`
	var p Payer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Active, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("payer %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) ListPayers(ctx context.Context) ([]*Payer, error) {
	query := `
		SELECT id, name, email, active, created_at
		FROM payers
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payers []*Payer
	for rows.Next() {
		var p Payer
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		payers = append(payers, &p)
	}
	return payers, rows.Err()
}

// --------------------------------------------------
// Children
// --------------------------------------------------
func (r *PostgresRepository) CreateChild(ctx context.Context, child *Child) error {
	query := `
		INSERT INTO children (name, birth_date, enrollment_date, active, payer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		child.Name, child.BirthDate, child.EnrollmentDate, child.Active, child.PayerID,
	).Scan(&child.ID, &child.CreatedAt)
}

func (r *PostgresRepository) GetChild(ctx context.Context, id int) (*Child, error) {
	query := `
		SELECT id, name, birth_date, enrollment_date, active, payer_id, created_at
		FROM children
		WHERE id = $1
	`
	var c Child
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.BirthDate, &c.EnrollmentDate, &c.Active, &c.PayerID, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("child %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) UpdateChild(ctx context.Context, child *Child) error {
	query := `
		UPDATE children
		SET name = $1, birth_date = $2, enrollment_date = $3, active = $4, payer_id = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query,
		child.Name, child.BirthDate, child.EnrollmentDate, child.Active, child.PayerID, child.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("child %d not found", child.ID)
	}
	return nil
}

func (r *PostgresRepository) ListChildren(ctx context.Context) ([]*Child, error) {
	query := `
		SELECT id, name, birth_date, enrollment_date, active, payer_id, created_at
		FROM children
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChildren(rows)
}

func (r *PostgresRepository) CountActiveByPayer(ctx context.Context, payerID, excludeChildID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM children
		WHERE payer_id = $1 AND active AND id <> $2
	`
	var n int
	if err := r.db.QueryRow(ctx, query, payerID, excludeChildID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) ListActiveWithPayer(ctx context.Context) ([]*Child, error) {
	query := `
		SELECT id, name, birth_date, enrollment_date, active, payer_id, created_at
		FROM children
		WHERE active AND payer_id IS NOT NULL
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChildren(rows)
}

func scanChildren(rows pgx.Rows) ([]*Child, error) {
	var children []*Child
	for rows.Next() {
		var c Child
		if err := rows.Scan(
			&c.ID, &c.Name, &c.BirthDate, &c.EnrollmentDate, &c.Active, &c.PayerID, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		children = append(children, &c)
	}
	return children, rows.Err()
}
