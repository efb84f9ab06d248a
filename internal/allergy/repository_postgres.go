package allergy

import (
	"context"
	"errors"

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

func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO allergies (child_id, ingredient_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, rec.ChildID, rec.IngredientID).Scan(&rec.ID, &rec.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return faults.Conflictf("child %d is already registered for ingredient %d", rec.ChildID, rec.IngredientID)
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, childID, ingredientID int) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM allergies
		WHERE child_id = $1 AND ingredient_id = $2
	`, childID, ingredientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("no allergy record for child %d and ingredient %d", childID, ingredientID)
	}
	return nil
}

func (r *PostgresRepository) ListForChild(ctx context.Context, childID int) ([]*Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, child_id, ingredient_id, created_at
		FROM allergies
		WHERE child_id = $1
		ORDER BY id
	`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ChildID, &rec.IngredientID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepository) IngredientIDsForChild(ctx context.Context, childID int) ([]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ingredient_id
		FROM allergies
		WHERE child_id = $1
	`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
