package catalog

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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Ingredients
// --------------------------------------------------
func (r *PostgresRepository) CreateIngredient(ctx context.Context, ing *Ingredient) error {
	query := `
		INSERT INTO ingredients (name, description, is_allergen)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, ing.Name, ing.Description, ing.IsAllergen).Scan(&ing.ID)
	if isUniqueViolation(err) {
		return faults.Conflictf("ingredient name %q already exists", ing.Name)
	}
	return err
}

func (r *PostgresRepository) GetIngredient(ctx context.Context, id int) (*Ingredient, error) {
	query := `
		SELECT id, name, description, is_allergen
		FROM ingredients
		WHERE id = $1
	`
	var ing Ingredient
	err := r.db.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.Description, &ing.IsAllergen)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("ingredient %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *PostgresRepository) GetIngredientByName(ctx context.Context, name string) (*Ingredient, error) {
	query := `
		SELECT id, name, description, is_allergen
		FROM ingredients
		WHERE LOWER(name) = LOWER($1)
	`
	var ing Ingredient
	err := r.db.QueryRow(ctx, query, name).Scan(&ing.ID, &ing.Name, &ing.Description, &ing.IsAllergen)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("ingredient %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *PostgresRepository) UpdateIngredient(ctx context.Context, ing *Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, description = $2, is_allergen = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, ing.Name, ing.Description, ing.IsAllergen, ing.ID)
	if isUniqueViolation(err) {
		return faults.Conflictf("ingredient name %q already exists", ing.Name)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("ingredient %d not found", ing.ID)
	}
	return nil
}

func (r *PostgresRepository) DeleteIngredient(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("ingredient %d not found", id)
	}
	return nil
}

func (r *PostgresRepository) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	query := `
		SELECT id, name, description, is_allergen
		FROM ingredients
		ORDER BY LOWER(name)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Description, &ing.IsAllergen); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, &ing)
	}
	return ingredients, rows.Err()
}

func (r *PostgresRepository) IngredientInUse(ctx context.Context, id int) (bool, error) {
	query := `SELECT 1 FROM dish_ingredients WHERE ingredient_id = $1 LIMIT 1`
	var one int
	err := r.db.QueryRow(ctx, query, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------
func (r *PostgresRepository) CreateDish(ctx context.Context, dish *Dish) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO dishes (name, dish_type)
		VALUES ($1, $2)
		RETURNING id
	`, dish.Name, dish.Type).Scan(&dish.ID)
	if isUniqueViolation(err) {
		return faults.Conflictf("dish name %q already exists", dish.Name)
	}
	if err != nil {
		return err
	}

	for _, di := range dish.Ingredients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO dish_ingredients (dish_id, ingredient_id, portion)
			VALUES ($1, $2, $3)
		`, dish.ID, di.IngredientID, di.Portion); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*Dish, error) {
	var dish Dish
	err := r.db.QueryRow(ctx, `
		SELECT id, name, dish_type
		FROM dishes
		WHERE id = $1
	`, id).Scan(&dish.ID, &dish.Name, &dish.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, faults.NotFoundf("dish %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ingredient_id, portion
		FROM dish_ingredients
		WHERE dish_id = $1
		ORDER BY ingredient_id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var di DishIngredient
		if err := rows.Scan(&di.IngredientID, &di.Portion); err != nil {
			return nil, err
		}
		dish.Ingredients = append(dish.Ingredients, di)
	}
	return &dish, rows.Err()
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]*Dish, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, dish_type
		FROM dishes
		ORDER BY LOWER(name)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []*Dish
	for rows.Next() {
		var dish Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Type); err != nil {
			return nil, err
		}
		dishes = append(dishes, &dish)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, dish := range dishes {
		full, err := r.GetDish(ctx, dish.ID)
		if err != nil {
			return nil, err
		}
		dish.Ingredients = full.Ingredients
	}
	return dishes, nil
}

func (r *PostgresRepository) AddDishIngredient(ctx context.Context, dishID, ingredientID int, portion string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dish_ingredients (dish_id, ingredient_id, portion)
		VALUES ($1, $2, $3)
	`, dishID, ingredientID, portion)
	if isUniqueViolation(err) {
		return faults.Conflictf("dish %d already contains ingredient %d", dishID, ingredientID)
	}
	return err
}

func (r *PostgresRepository) RemoveDishIngredient(ctx context.Context, dishID, ingredientID int) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM dish_ingredients
		WHERE dish_id = $1 AND ingredient_id = $2
	`, dishID, ingredientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFoundf("dish %d has no ingredient %d", dishID, ingredientID)
	}
	return nil
}
