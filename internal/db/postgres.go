package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the database schema. The unique constraints here are
// contractual: (child_id, day) for attendance and consumptions,
// (child_id, month, year) for charges, lower(name) for ingredients and
// dishes, (child_id, ingredient_id) for allergies.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'STAFF',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS payers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS children (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			birth_date DATE NOT NULL,
			enrollment_date DATE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			payer_id INT NULL REFERENCES payers(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			is_allergen BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ingredients_name_ci
			ON ingredients (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			dish_type VARCHAR(50)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS dishes_name_ci
			ON dishes (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS dish_ingredients (
			dish_id INT NOT NULL REFERENCES dishes(id),
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			portion TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (dish_id, ingredient_id)
		)`,

		`CREATE TABLE IF NOT EXISTS menus (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			photo_url VARCHAR(500) NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS menu_dishes (
			menu_id INT NOT NULL REFERENCES menus(id),
			dish_id INT NOT NULL REFERENCES dishes(id),
			position INT NOT NULL,
			is_main BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (menu_id, dish_id)
		)`,

		`CREATE TABLE IF NOT EXISTS allergies (
			id SERIAL PRIMARY KEY,
			child_id INT NOT NULL REFERENCES children(id),
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (child_id, ingredient_id)
		)`,

		`CREATE TABLE IF NOT EXISTS attendance (
			id SERIAL PRIMARY KEY,
			child_id INT NOT NULL REFERENCES children(id),
			day DATE NOT NULL,
			attended BOOLEAN NOT NULL,
			UNIQUE (child_id, day)
		)`,

		`CREATE TABLE IF NOT EXISTS fixed_cost_versions (
			id SERIAL PRIMARY KEY,
			amount NUMERIC(10,2) NOT NULL,
			valid_from DATE NOT NULL,
			valid_to DATE NULL,
			active BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS menu_consumptions (
			id SERIAL PRIMARY KEY,
			child_id INT NOT NULL REFERENCES children(id),
			menu_id INT NOT NULL REFERENCES menus(id),
			day DATE NOT NULL,
			billed_cost NUMERIC(10,2) NOT NULL,
			notes TEXT,
			UNIQUE (child_id, day)
		)`,

		`CREATE TABLE IF NOT EXISTS monthly_charges (
			id SERIAL PRIMARY KEY,
			child_id INT NOT NULL REFERENCES children(id),
			payer_id INT NOT NULL REFERENCES payers(id),
			month INT NOT NULL,
			year INT NOT NULL,
			fixed_cost NUMERIC(10,2) NOT NULL,
			meal_cost NUMERIC(10,2) NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			generated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			paid_at DATE NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			UNIQUE (child_id, month, year)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
