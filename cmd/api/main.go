package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Costeo-api/internal/application/auth"
	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/production"
	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// @title           Costeo API
// @version         1.0
// @description     API de costeo de recetas e inventario para talleres de producción de alimentos.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	orderPDF := infrapdf.NewMarotoOrderGenerator(cfg.App.Name)

	materialUC := usecase.NewMaterialUseCase(materialRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	recipeUC := costing.NewRecipeUseCase(txRunner, recipeRepo)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo, materialRepo, orderPDF)
	productionUC := production.NewProductionUseCase(txRunner, productionRepo, recipeRepo)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, materialRepo, productRepo, movementRepo)
	authUC := auth.NewAuthUseCase(cfg.Auth, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		MaterialUC:   materialUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		RecipeUC:     recipeUC,
		PurchaseUC:   purchaseUC,
		ProductionUC: productionUC,
		InventoryUC:  inventoryUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
