package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/production"
	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// Un solo runner implementa los cuatro puertos transaccionales.
var _ costing.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCosting transacción para mutaciones de recetas y recálculo de costeo.
func (r *TxRunner) RunCosting(ctx context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRecipeRepository(tx), NewProductRepository(tx), NewMaterialRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceipt transacción para la recepción de una orden de compra.
func (r *TxRunner) RunReceipt(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseRepository(tx), NewMaterialRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction transacción para la completación o cancelación de una producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	productionRepo repository.ProductionRepository,
	recipeRepo repository.RecipeRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductionRepository(tx),
		NewRecipeRepository(tx),
		NewMaterialRepository(tx),
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjustment transacción para un ajuste manual de stock.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMaterialRepository(tx), NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
