package attendance

import (
	"context"
	"errors"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance (child_id, day, attended)
		VALUES ($1, $2, $3)
		RETURNING id
	`, rec.ChildID, rec.Day, rec.Attended).Scan(&rec.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return faults.Conflictf("attendance already recorded for child %d on %s",
			rec.ChildID, rec.Day.Format("2006-01-02"))
	}
	return err
}

func (r *PostgresRepository) ListMonth(ctx context.Context, childID, month, year int) ([]*Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, child_id, day, attended
		FROM attendance
		WHERE child_id = $1
		  AND EXTRACT(MONTH FROM day) = $2
		  AND EXTRACT(YEAR FROM day) = $3
		ORDER BY day
	`, childID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ChildID, &rec.Day, &rec.Attended); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepository) CountAttended(ctx context.Context, childID, month, year int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendance
		WHERE child_id = $1
		  AND attended
		  AND EXTRACT(MONTH FROM day) = $2
		  AND EXTRACT(YEAR FROM day) = $3
	`, childID, month, year).Scan(&n)
	return n, err
}

func (r *PostgresRepository) Exists(ctx context.Context, childID int, day time.Time) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM attendance WHERE child_id = $1 AND day = $2 LIMIT 1
	`, childID, day).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
