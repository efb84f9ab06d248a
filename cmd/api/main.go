package main

import (
	"context"
	"log"
	"os"
	"time"

	"guarderia/internal/allergy"
	"guarderia/internal/attendance"
	"guarderia/internal/auth"
	"guarderia/internal/billing"
	"guarderia/internal/catalog"
	"guarderia/internal/child"
	"guarderia/internal/clock"
	"guarderia/internal/consumption"
	"guarderia/internal/db"
	"guarderia/internal/fixedcost"
	"guarderia/internal/menu"
	"guarderia/internal/middleware"
	"guarderia/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	clk := clock.System{}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("/protected")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"message": "pong"})
			})
		}
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	childRepo := child.NewPostgresRepository(pgDB)
	catalogRepo := catalog.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	allergyRepo := allergy.NewPostgresRepository(pgDB)
	attendanceRepo := attendance.NewPostgresRepository(pgDB)
	fixedCostRepo := fixedcost.NewPostgresRepository(pgDB)
	consumptionRepo := consumption.NewPostgresRepository(pgDB)
	chargeRepo := billing.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	childService := child.NewService(childRepo, clk)
	catalogService := catalog.NewService(catalogRepo)
	menuService := menu.NewService(menuRepo, catalogService, r2Client)

	validator := allergy.NewValidator(
		allergyRepo,
		catalogService,
		menuService,
		catalogService,
	)
	allergyService := allergy.NewService(allergyRepo, childService, catalogService)

	attendanceService := attendance.NewService(attendanceRepo, childService, clk)
	fixedCostService := fixedcost.NewService(fixedCostRepo, clk)

	consumptionService := consumption.NewService(
		consumptionRepo,
		childService,
		menuService,
		validator,
		clk,
	)

	discountEngine := billing.NewDiscountEngine(childService, fixedCostService, clk)
	billingService := billing.NewService(
		chargeRepo,
		childService,
		fixedCostService,
		consumptionService,
		discountEngine,
		clk,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	childHandler := child.NewHandler(childService)
	catalogHandler := catalog.NewHandler(catalogService)
	menuHandler := menu.NewHandler(menuService, validator)
	allergyHandler := allergy.NewHandler(allergyService, validator)
	attendanceHandler := attendance.NewHandler(attendanceService)
	fixedCostHandler := fixedcost.NewHandler(fixedCostService)
	consumptionHandler := consumption.NewHandler(consumptionService)
	billingHandler := billing.NewHandler(billingService)

	// ───────────────────────── PAYER + CHILD ROUTES ─────────────────────────
	payers := r.Group("/payers")
	payers.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		payers.POST("", childHandler.CreatePayer)
		payers.GET("", childHandler.ListPayers)
	}

	children := r.Group("/children")
	children.Use(middleware.AuthMiddleware())
	{
		children.GET("", childHandler.List)
		children.GET("/:id", childHandler.Get)

		adminOnly := children.Group("")
		adminOnly.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			adminOnly.POST("", childHandler.Enroll)
			adminOnly.PUT("/:id/payer", childHandler.AssignPayer)
			adminOnly.POST("/:id/deactivate", childHandler.Deactivate)
		}
	}

	// ───────────────────────── CATALOG ROUTES ─────────────────────────
	ingredients := r.Group("/ingredients")
	ingredients.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff),
	)
	{
		ingredients.POST("", catalogHandler.CreateIngredient)
		ingredients.GET("", catalogHandler.ListIngredients)
		ingredients.GET("/by-name", catalogHandler.GetIngredientByName)
		ingredients.GET("/:id", catalogHandler.GetIngredient)
		ingredients.PUT("/:id", catalogHandler.UpdateIngredient)
		ingredients.DELETE("/:id", catalogHandler.DeleteIngredient)
	}

	dishes := r.Group("/dishes")
	dishes.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff),
	)
	{
		dishes.POST("", catalogHandler.CreateDish)
		dishes.GET("", catalogHandler.ListDishes)
		dishes.GET("/:id", catalogHandler.GetDish)
		dishes.POST("/:id/ingredients", catalogHandler.AddDishIngredient)
		dishes.DELETE("/:id/ingredients/:ingredient_id", catalogHandler.RemoveDishIngredient)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/menus")
	menus.Use(middleware.AuthMiddleware())
	{
		menus.GET("", menuHandler.List)
		menus.GET("/:id", menuHandler.Get)
		menus.GET("/safe/:child_id", menuHandler.ListSafeForChild)

		staff := menus.Group("")
		staff.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff))
		{
			staff.POST("", menuHandler.Create)
			staff.PUT("/:id", menuHandler.Update)
			staff.PATCH("/:id/active", menuHandler.SetActive)
			staff.POST("/:id/dishes", menuHandler.AddDish)
			staff.DELETE("/:id/dishes/:dish_id", menuHandler.RemoveDish)
			staff.POST("/:id/photo", menuHandler.UploadPhoto)
		}
	}

	// ───────────────────────── ALLERGY ROUTES ─────────────────────────
	allergies := r.Group("/allergies")
	allergies.Use(middleware.AuthMiddleware())
	{
		allergies.GET("/check", allergyHandler.Check)
		allergies.GET("/child/:child_id", allergyHandler.ListForChild)

		staff := allergies.Group("")
		staff.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff))
		{
			staff.POST("", allergyHandler.Register)
			staff.DELETE("/:child_id/:ingredient_id", allergyHandler.Unregister)
		}
	}

	// ───────────────────────── ATTENDANCE ROUTES ─────────────────────────
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("/child/:child_id", attendanceHandler.ListMonth)

		staff := attendances.Group("")
		staff.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff))
		{
			staff.POST("", attendanceHandler.Record)
		}
	}

	// ───────────────────────── CONSUMPTION ROUTES ─────────────────────────
	consumptions := r.Group("/consumptions")
	consumptions.Use(middleware.AuthMiddleware())
	{
		consumptions.GET("/child/:child_id", consumptionHandler.ListMonth)

		staff := consumptions.Group("")
		staff.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleStaff))
		{
			staff.POST("", consumptionHandler.Record)
			staff.PUT("/:id/menu", consumptionHandler.Reassign)
		}
	}

	// ───────────────────────── FIXED COST ROUTES ─────────────────────────
	fixedCosts := r.Group("/fixed-costs")
	fixedCosts.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		fixedCosts.POST("", fixedCostHandler.Create)
		fixedCosts.GET("", fixedCostHandler.List)
		fixedCosts.GET("/current", fixedCostHandler.Current)
		fixedCosts.POST("/:id/activate", fixedCostHandler.Activate)
		fixedCosts.POST("/:id/deactivate", fixedCostHandler.Deactivate)
	}

	// ───────────────────────── BILLING ROUTES ─────────────────────────
	charges := r.Group("/charges")
	charges.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		charges.POST("", billingHandler.Generate)
		charges.POST("/bulk", billingHandler.BulkGenerate)
		charges.GET("/:id", billingHandler.Get)
		charges.POST("/:id/recalculate", billingHandler.Recalculate)
		charges.POST("/:id/pay", billingHandler.MarkPaid)
		charges.POST("/:id/unpay", billingHandler.MarkPending)
		charges.GET("/child/:child_id", billingHandler.ListForChild)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
