// Package memrepo implementa los puertos de repositorio sobre mapas en
// memoria, para los tests de casos de uso. Replica el contrato de los repos
// de postgres: lookup sin resultado devuelve (nil, nil), código/número
// duplicado devuelve domain.ErrDuplicate.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// Store contiene todas las tablas en memoria. Los repos y el TxRunner falso
// operan sobre el mismo Store, así los tests inspeccionan el estado final
// directamente.
type Store struct {
	Materials     map[string]*entity.Material
	Suppliers     map[string]*entity.Supplier
	Products      map[string]*entity.Product
	Recipes       map[string]*entity.Recipe
	RecipeLines   map[string][]entity.RecipeLine
	Purchases     map[string]*entity.Purchase
	PurchaseLines map[string][]entity.PurchaseLine
	Productions   map[string]*entity.Production
	Movements     []*entity.StockMovement
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		Materials:     make(map[string]*entity.Material),
		Suppliers:     make(map[string]*entity.Supplier),
		Products:      make(map[string]*entity.Product),
		Recipes:       make(map[string]*entity.Recipe),
		RecipeLines:   make(map[string][]entity.RecipeLine),
		Purchases:     make(map[string]*entity.Purchase),
		PurchaseLines: make(map[string][]entity.PurchaseLine),
		Productions:   make(map[string]*entity.Production),
	}
}

// TxRunner implementa los cuatro puertos transaccionales de la capa de
// aplicación pasando los repos del mismo Store, sin transacción real.
// Suficiente para los tests: los procesadores verifican antes de mutar,
// así que los caminos de error no dejan estado a medias.
type TxRunner struct {
	S *Store
}

// RunCosting ejecuta fn con los repos de receta, producto y material.
func (r *TxRunner) RunCosting(_ context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return fn(r.S.RecipeRepo(), r.S.ProductRepo(), r.S.MaterialRepo())
}

// RunReceipt ejecuta fn con los repos de compra, material y movimientos.
func (r *TxRunner) RunReceipt(_ context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(r.S.PurchaseRepo(), r.S.MaterialRepo(), r.S.MovementRepo())
}

// RunProduction ejecuta fn con los cinco repos de la completación.
func (r *TxRunner) RunProduction(_ context.Context, fn func(
	productionRepo repository.ProductionRepository,
	recipeRepo repository.RecipeRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(r.S.ProductionRepo(), r.S.RecipeRepo(), r.S.MaterialRepo(), r.S.ProductRepo(), r.S.MovementRepo())
}

// RunAdjustment ejecuta fn con los repos de material, producto y movimientos.
func (r *TxRunner) RunAdjustment(_ context.Context, fn func(
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(r.S.MaterialRepo(), r.S.ProductRepo(), r.S.MovementRepo())
}

// MaterialRepo devuelve el repo de materiales del Store.
func (s *Store) MaterialRepo() repository.MaterialRepository { return &materialRepo{s} }

// SupplierRepo devuelve el repo de proveedores del Store.
func (s *Store) SupplierRepo() repository.SupplierRepository { return &supplierRepo{s} }

// ProductRepo devuelve el repo de productos del Store.
func (s *Store) ProductRepo() repository.ProductRepository { return &productRepo{s} }

// RecipeRepo devuelve el repo de recetas del Store.
func (s *Store) RecipeRepo() repository.RecipeRepository { return &recipeRepo{s} }

// PurchaseRepo devuelve el repo de compras del Store.
func (s *Store) PurchaseRepo() repository.PurchaseRepository { return &purchaseRepo{s} }

// ProductionRepo devuelve el repo de producciones del Store.
func (s *Store) ProductionRepo() repository.ProductionRepository { return &productionRepo{s} }

// MovementRepo devuelve el repo del libro de movimientos del Store.
func (s *Store) MovementRepo() repository.StockMovementRepository { return &movementRepo{s} }

// ── materiales ────────────────────────────────────────────────────────────────

type materialRepo struct{ s *Store }

func (r *materialRepo) Create(m *entity.Material) error {
	for _, existing := range r.s.Materials {
		if existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Materials[m.ID] = m
	return nil
}

func (r *materialRepo) GetByID(id string) (*entity.Material, error) {
	return r.s.Materials[id], nil
}

func (r *materialRepo) GetByCode(code string) (*entity.Material, error) {
	for _, m := range r.s.Materials {
		if m.Code == code {
			return m, nil
		}
	}
	return nil, nil
}

func (r *materialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.s.Materials[id], nil
}

func (r *materialRepo) Update(m *entity.Material) error {
	if _, ok := r.s.Materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Materials[m.ID] = m
	return nil
}

func (r *materialRepo) UpdateStockAndPrice(m *entity.Material) error {
	return r.Update(m)
}

func (r *materialRepo) List(status string, limit, offset int) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.s.Materials {
		if status == "" || m.Status == status {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

func (r *materialRepo) ListBelowMinStock() ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.s.Materials {
		if m.Status == entity.StatusActive && m.MinStock.GreaterThan(decimal.Zero) && m.Stock.LessThanOrEqual(m.MinStock) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *materialRepo) LastCode() (string, error) {
	last := ""
	for _, m := range r.s.Materials {
		if strings.HasPrefix(m.Code, "MAT-") && m.Code > last {
			last = m.Code
		}
	}
	return last, nil
}

func (r *materialRepo) CountReferences(id string) (int, error) {
	n := 0
	for _, lines := range r.s.RecipeLines {
		for _, l := range lines {
			if l.MaterialID == id {
				n++
			}
		}
	}
	for _, lines := range r.s.PurchaseLines {
		for _, l := range lines {
			if l.MaterialID == id {
				n++
			}
		}
	}
	return n, nil
}

func (r *materialRepo) Delete(id string) error {
	if _, ok := r.s.Materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Materials, id)
	return nil
}

// ── proveedores ───────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(sup *entity.Supplier) error {
	for _, existing := range r.s.Suppliers {
		if existing.Code == sup.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Suppliers[sup.ID] = sup
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.s.Suppliers[id], nil
}

func (r *supplierRepo) Update(sup *entity.Supplier) error {
	if _, ok := r.s.Suppliers[sup.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Suppliers[sup.ID] = sup
	return nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.Suppliers {
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

func (r *supplierRepo) LastCode() (string, error) {
	last := ""
	for _, sup := range r.s.Suppliers {
		if strings.HasPrefix(sup.Code, "SUP-") && sup.Code > last {
			last = sup.Code
		}
	}
	return last, nil
}

func (r *supplierRepo) CountReferences(id string) (int, error) {
	n := 0
	for _, m := range r.s.Materials {
		if m.SupplierID != nil && *m.SupplierID == id {
			n++
		}
	}
	for _, p := range r.s.Purchases {
		if p.SupplierID == id {
			n++
		}
	}
	return n, nil
}

func (r *supplierRepo) Delete(id string) error {
	if _, ok := r.s.Suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Suppliers, id)
	return nil
}

// ── productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	for _, existing := range r.s.Products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Products[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.Products[id], nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.Products[id], nil
}

func (r *productRepo) Update(p *entity.Product) error {
	if _, ok := r.s.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Products[p.ID] = p
	return nil
}

func (r *productRepo) UpdateCosting(productID string, hpp, marginAmount, marginPercent decimal.Decimal) error {
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.HPP = hpp
	p.MarginAmount = marginAmount
	p.MarginPercent = marginPercent
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) List(status string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

func (r *productRepo) ListBelowMinStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		if p.Status == entity.StatusActive && p.MinStock.GreaterThan(decimal.Zero) && p.Stock.LessThanOrEqual(p.MinStock) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *productRepo) LastCode() (string, error) {
	last := ""
	for _, p := range r.s.Products {
		if strings.HasPrefix(p.Code, "PRD-") && p.Code > last {
			last = p.Code
		}
	}
	return last, nil
}

func (r *productRepo) CountReferences(id string) (int, error) {
	n := 0
	for _, p := range r.s.Productions {
		if p.ProductID == id {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) Delete(id string) error {
	if _, ok := r.s.Products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Products, id)
	return nil
}

// ── recetas ───────────────────────────────────────────────────────────────────

type recipeRepo struct{ s *Store }

func (r *recipeRepo) Create(recipe *entity.Recipe) error {
	r.s.Recipes[recipe.ID] = recipe
	return nil
}

func (r *recipeRepo) GetByID(id string) (*entity.Recipe, error) {
	return r.s.Recipes[id], nil
}

func (r *recipeRepo) GetActiveByProduct(productID string) (*entity.Recipe, error) {
	for _, recipe := range r.s.Recipes {
		if recipe.ProductID == productID && recipe.IsActive {
			return recipe, nil
		}
	}
	return nil, nil
}

func (r *recipeRepo) ListByProduct(productID string) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, recipe := range r.s.Recipes {
		if recipe.ProductID == productID {
			out = append(out, recipe)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *recipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, recipe := range r.s.Recipes {
		out = append(out, recipe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *recipeRepo) Update(recipe *entity.Recipe) error {
	if _, ok := r.s.Recipes[recipe.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Recipes[recipe.ID] = recipe
	return nil
}

func (r *recipeRepo) SetActive(recipeID string, active bool) error {
	recipe, ok := r.s.Recipes[recipeID]
	if !ok {
		return domain.ErrNotFound
	}
	recipe.IsActive = active
	return nil
}

func (r *recipeRepo) DeactivateSiblings(productID, exceptRecipeID string) error {
	for _, recipe := range r.s.Recipes {
		if recipe.ProductID == productID && recipe.ID != exceptRecipeID {
			recipe.IsActive = false
		}
	}
	return nil
}

func (r *recipeRepo) Delete(id string) error {
	if _, ok := r.s.Recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Recipes, id)
	delete(r.s.RecipeLines, id)
	return nil
}

func (r *recipeRepo) CreateLine(line *entity.RecipeLine) error {
	r.s.RecipeLines[line.RecipeID] = append(r.s.RecipeLines[line.RecipeID], *line)
	return nil
}

func (r *recipeRepo) DeleteLines(recipeID string) error {
	delete(r.s.RecipeLines, recipeID)
	return nil
}

func (r *recipeRepo) ListLineDetails(recipeID string) ([]entity.RecipeLineDetail, error) {
	var out []entity.RecipeLineDetail
	for _, line := range r.s.RecipeLines[recipeID] {
		m, ok := r.s.Materials[line.MaterialID]
		if !ok {
			continue
		}
		out = append(out, entity.RecipeLineDetail{
			RecipeLine:    line,
			MaterialName:  m.Name,
			MaterialUnit:  m.Unit,
			PurchasePrice: m.PurchasePrice,
			MaterialStock: m.Stock,
		})
	}
	return out, nil
}

func (r *recipeRepo) ListLineDetailsForUpdate(recipeID string) ([]entity.RecipeLineDetail, error) {
	return r.ListLineDetails(recipeID)
}

// ── compras ───────────────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(p *entity.Purchase, lines []entity.PurchaseLine) error {
	for _, existing := range r.s.Purchases {
		if existing.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.Purchases[p.ID] = p
	r.s.PurchaseLines[p.ID] = lines
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.s.Purchases[id], nil
}

func (r *purchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.s.Purchases[id], nil
}

func (r *purchaseRepo) GetByNumber(number string) (*entity.Purchase, error) {
	for _, p := range r.s.Purchases {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, nil
}

func (r *purchaseRepo) ListLines(purchaseID string) ([]entity.PurchaseLine, error) {
	return r.s.PurchaseLines[purchaseID], nil
}

func (r *purchaseRepo) List(status string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.Purchases {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

func (r *purchaseRepo) MarkReceived(id string, receivedDate time.Time) error {
	p, ok := r.s.Purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.PurchaseStatusReceived
	p.ReceivedDate = &receivedDate
	p.UpdatedAt = receivedDate
	return nil
}

func (r *purchaseRepo) LastNumberForPrefix(prefix string) (string, error) {
	last := ""
	for _, p := range r.s.Purchases {
		if strings.HasPrefix(p.Number, prefix) && p.Number > last {
			last = p.Number
		}
	}
	return last, nil
}

func (r *purchaseRepo) Delete(id string) error {
	if _, ok := r.s.Purchases[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Purchases, id)
	delete(r.s.PurchaseLines, id)
	return nil
}

// ── producciones ──────────────────────────────────────────────────────────────

type productionRepo struct{ s *Store }

func (r *productionRepo) Create(p *entity.Production) error {
	for _, existing := range r.s.Productions {
		if existing.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.Productions[p.ID] = p
	return nil
}

func (r *productionRepo) GetByID(id string) (*entity.Production, error) {
	return r.s.Productions[id], nil
}

func (r *productionRepo) GetForUpdate(id string) (*entity.Production, error) {
	return r.s.Productions[id], nil
}

func (r *productionRepo) GetByNumber(number string) (*entity.Production, error) {
	for _, p := range r.s.Productions {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, nil
}

func (r *productionRepo) List(status string, limit, offset int) ([]*entity.Production, error) {
	var out []*entity.Production
	for _, p := range r.s.Productions {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

func (r *productionRepo) MarkCompleted(id string, completedDate time.Time) error {
	p, ok := r.s.Productions[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.ProductionStatusCompleted
	p.CompletedDate = &completedDate
	p.UpdatedAt = completedDate
	return nil
}

func (r *productionRepo) MarkCancelled(id string) error {
	p, ok := r.s.Productions[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.ProductionStatusCancelled
	return nil
}

func (r *productionRepo) LastNumberForPrefix(prefix string) (string, error) {
	last := ""
	for _, p := range r.s.Productions {
		if strings.HasPrefix(p.Number, prefix) && p.Number > last {
			last = p.Number
		}
	}
	return last, nil
}

func (r *productionRepo) Delete(id string) error {
	if _, ok := r.s.Productions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Productions, id)
	return nil
}

// ── libro de movimientos ──────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	r.s.Movements = append(r.s.Movements, mov)
	return nil
}

func (r *movementRepo) ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if m.ItemKind == itemKind && m.ItemID == itemID && inRange(m.Date, from, to) {
			out = append(out, m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *movementRepo) List(itemKind, refKind string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if itemKind != "" && m.ItemKind != itemKind {
			continue
		}
		if refKind != "" && m.RefKind != refKind {
			continue
		}
		if !inRange(m.Date, from, to) {
			continue
		}
		out = append(out, m)
	}
	return page(out, limit, offset), nil
}

func inRange(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
