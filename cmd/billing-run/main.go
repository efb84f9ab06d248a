package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"guarderia/internal/allergy"
	"guarderia/internal/billing"
	"guarderia/internal/catalog"
	"guarderia/internal/child"
	"guarderia/internal/clock"
	"guarderia/internal/consumption"
	"guarderia/internal/db"
	"guarderia/internal/fixedcost"
	"guarderia/internal/menu"

	"github.com/joho/godotenv"
)

// billing-run generates the monthly charge for every active child with
// an assigned payer. Children already billed for the period are skipped.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	now := time.Now()
	month := flag.Int("month", int(now.Month()), "billing month (1-12)")
	year := flag.Int("year", now.Year(), "billing year")
	flag.Parse()

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	log.Printf("💰 Billing run starting for %d/%d...", *month, *year)

	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	clk := clock.System{}

	childService := child.NewService(child.NewPostgresRepository(pgDB), clk)
	fixedCostService := fixedcost.NewService(fixedcost.NewPostgresRepository(pgDB), clk)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(pgDB))
	// photo uploads are not reachable from a billing run, so no object
	// store is wired
	menuService := menu.NewService(menu.NewPostgresRepository(pgDB), catalogService, nil)
	checker := allergy.NewValidator(
		allergy.NewPostgresRepository(pgDB),
		catalogService,
		menuService,
		catalogService,
	)
	consumptionService := consumption.NewService(
		consumption.NewPostgresRepository(pgDB),
		childService,
		menuService,
		checker,
		clk,
	)

	discountEngine := billing.NewDiscountEngine(childService, fixedCostService, clk)
	billingService := billing.NewService(
		billing.NewPostgresRepository(pgDB),
		childService,
		fixedCostService,
		consumptionService,
		discountEngine,
		clk,
	)

	charges, err := billingService.BulkGenerate(context.Background(), *month, *year)
	if err != nil {
		log.Printf("⚠️  Billing run finished with errors: %v", err)
	}

	log.Printf("✅ Generated %d charge(s) for %d/%d", len(charges), *month, *year)
	for _, c := range charges {
		log.Printf("   child %d: total %s (fixed %s, meals %s)",
			c.ChildID, c.Total, c.FixedCost, c.MealCost)
	}
}
