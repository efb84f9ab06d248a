package fixedcost

import (
	"context"
	"errors"
	"time"

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

const versionColumns = `id, amount, valid_from, valid_to, active, description`

func (r *PostgresRepository) Create(ctx context.Context, v *Version) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO fixed_cost_versions (amount, valid_from, valid_to, active, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, v.Amount, v.ValidFrom, v.ValidTo, v.Active, v.Description).Scan(&v.ID)
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Version, error) {
	var v Version
	err := r.db.QueryRow(ctx, `
		SELECT `+versionColumns+`
		FROM fixed_cost_versions
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Amount, &v.ValidFrom, &v.ValidTo, &v.Active, &v.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("fixed-cost version %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Version, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+versionColumns+`
		FROM fixed_cost_versions
		ORDER BY valid_from
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.Amount, &v.ValidFrom, &v.ValidTo, &v.Active, &v.Description); err != nil {
			return nil, err
		}
		versions = append(versions, &v)
	}
	return versions, rows.Err()
}

func (r *PostgresRepository) ActiveVersion(ctx context.Context) (*Version, error) {
	var v Version
	err := r.db.QueryRow(ctx, `
		SELECT `+versionColumns+`
		FROM fixed_cost_versions
		WHERE active
		LIMIT 1
	`).Scan(&v.ID, &v.Amount, &v.ValidFrom, &v.ValidTo, &v.Active, &v.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) VersionCovering(ctx context.Context, day time.Time) (*Version, error) {
	var v Version
	err := r.db.QueryRow(ctx, `
		SELECT `+versionColumns+`
		FROM fixed_cost_versions
		WHERE valid_from <= $1
		  AND (valid_to IS NULL OR valid_to >= $1)
		ORDER BY valid_from DESC
		LIMIT 1
	`, day).Scan(&v.ID, &v.Amount, &v.ValidFrom, &v.ValidTo, &v.Active, &v.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) Update(ctx context.Context, v *Version) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE fixed_cost_versions
		SET amount = $1, valid_from = $2, valid_to = $3, active = $4, description = $5
		WHERE id = $6
	`, v.Amount, v.ValidFrom, v.ValidTo, v.Active, v.Description, v.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("fixed-cost version %d not found", v.ID)
	}
	return nil
}

func (r *PostgresRepository) CloseAndActivate(ctx context.Context, closeID *int, closeTo time.Time, openID int, openFrom time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if closeID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE fixed_cost_versions
			SET valid_to = $1, active = FALSE
			WHERE id = $2
		`, closeTo, *closeID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE fixed_cost_versions
		SET valid_from = $1, valid_to = NULL, active = TRUE
		WHERE id = $2
	`, openFrom, openID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
