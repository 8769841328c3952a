package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// PurchaseUseCase gestiona órdenes de compra y su recepción: al recibir, cada
// línea sobreescribe el precio de compra del material (último precio gana),
// suma stock y deja una entrada "in" en el libro de movimientos.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	materialRepo repository.MaterialRepository
	pdfGen       OrderPDFGenerator
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	materialRepo repository.MaterialRepository,
	pdfGen OrderPDFGenerator,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
		pdfGen:       pdfGen,
	}
}

// Create crea la orden con sus líneas. Subtotal y Total se calculan aquí:
// Subtotal = Σ(qty × precio), Total = Subtotal - Discount + Tax + Shipping.
// Con status "received" la recepción se procesa inmediatamente.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Status {
	case "", entity.PurchaseStatusDraft, entity.PurchaseStatusSubmitted, entity.PurchaseStatusReceived:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) || in.Tax.LessThan(decimal.Zero) || in.Shipping.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.Qty.GreaterThan(decimal.Zero) || l.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	number := in.Number
	if number == "" {
		number, err = uc.NextNumber()
		if err != nil {
			return nil, err
		}
	} else if existing, err := uc.purchaseRepo.GetByNumber(number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := in.Status
	if status == "" {
		status = entity.PurchaseStatusDraft
	}

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		Number:     number,
		Date:       date,
		SupplierID: in.SupplierID,
		Discount:   in.Discount,
		Tax:        in.Tax,
		Shipping:   in.Shipping,
		Status:     entity.PurchaseStatusDraft,
		Note:       in.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	lines := make([]entity.PurchaseLine, 0, len(in.Lines))
	subtotal := decimal.Zero
	for _, l := range in.Lines {
		lineSubtotal := l.Qty.Mul(l.UnitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		lines = append(lines, entity.PurchaseLine{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			MaterialID: l.MaterialID,
			Qty:        l.Qty,
			Unit:       l.Unit,
			UnitPrice:  l.UnitPrice,
			Subtotal:   lineSubtotal,
			CreatedAt:  now,
		})
	}
	purchase.Subtotal = subtotal
	purchase.Total = subtotal.Sub(in.Discount).Add(in.Tax).Add(in.Shipping)
	if purchase.Total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if status != entity.PurchaseStatusReceived {
		purchase.Status = status
	}

	if err := uc.purchaseRepo.Create(purchase, lines); err != nil {
		return nil, err
	}
	// Recepción inmediata: mismo procesador transaccional que POST /receive.
	if status == entity.PurchaseStatusReceived {
		if err := uc.Receive(ctx, purchase.ID); err != nil {
			return nil, err
		}
		purchase, err = uc.purchaseRepo.GetByID(purchase.ID)
		if err != nil {
			return nil, err
		}
	}
	return uc.buildResponse(purchase)
}

// Receive marca la orden como recibida y propaga el efecto a los materiales.
// Todo dentro de una transacción: estado + fecha, y por cada línea (con la
// fila del material bloqueada FOR UPDATE) precio de compra := precio de línea,
// stock := stock + qty, y una entrada "in" en el libro. Si un material
// desapareció a mitad del bucle, la recepción completa se revierte.
func (uc *PurchaseUseCase) Receive(ctx context.Context, id string) error {
	return uc.txRunner.RunReceipt(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
	) error {
		purchase, err := purchaseRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		// received y cancelled son estados finales: no se vuelve a recibir.
		if purchase.Status == entity.PurchaseStatusReceived || purchase.Status == entity.PurchaseStatusCancelled {
			return domain.ErrConflict
		}

		now := time.Now()
		if err := purchaseRepo.MarkReceived(purchase.ID, now); err != nil {
			return err
		}

		lines, err := purchaseRepo.ListLines(purchase.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			material, err := materialRepo.GetForUpdate(line.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return fmt.Errorf("material %s de la línea: %w", line.MaterialID, domain.ErrNotFound)
			}
			stockBefore := material.Stock
			stockAfter := stockBefore.Add(line.Qty)

			// Último precio de compra gana: sin promedio ponderado.
			material.PurchasePrice = line.UnitPrice
			material.Stock = stockAfter
			material.UpdatedAt = now
			if err := materialRepo.UpdateStockAndPrice(material); err != nil {
				return err
			}

			mov := &entity.StockMovement{
				Date:         now,
				ItemKind:     entity.ItemKindMaterial,
				ItemID:       material.ID,
				ItemName:     material.Name,
				MovementType: entity.MovementIn,
				Qty:          line.Qty,
				StockBefore:  stockBefore,
				StockAfter:   stockAfter,
				RefKind:      entity.RefKindPurchase,
				RefID:        purchase.ID,
				RefNumber:    purchase.Number,
				Note:         "Compra a proveedor",
				CreatedAt:    now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		// Nota: la recepción NO recalcula el HPP de productos dependientes;
		// el cache se actualiza en la próxima mutación de receta.
		return nil
	})
}

// GetByID devuelve la orden con sus líneas.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	return uc.buildResponse(purchase)
}

// List devuelve órdenes paginadas, con filtro opcional por estado.
func (uc *PurchaseUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	purchases, err := uc.purchaseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		resp, err := uc.buildResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Delete elimina una orden no recibida (las líneas caen en cascada).
// Una orden recibida es inmutable: ya movió stock y precios.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	if purchase.Status == entity.PurchaseStatusReceived {
		return domain.ErrConflict
	}
	return uc.purchaseRepo.Delete(id)
}

// GeneratePDF genera la orden de compra imprimible para enviar al proveedor.
func (uc *PurchaseUseCase) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(purchase.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.ListLines(purchase.ID)
	if err != nil {
		return nil, err
	}
	pdfLines := make([]PurchaseLineForPDF, 0, len(lines))
	for _, l := range lines {
		name := l.MaterialID
		if m, err := uc.materialRepo.GetByID(l.MaterialID); err == nil && m != nil {
			name = m.Name
		}
		pdfLines = append(pdfLines, PurchaseLineForPDF{
			MaterialName: name,
			Qty:          l.Qty,
			Unit:         l.Unit,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal,
		})
	}
	return uc.pdfGen.GenerateOrderPDF(ctx, purchase, supplier, pdfLines)
}

// NextNumber genera el siguiente número de orden del día: PO-YYYYMMDD-001.
func (uc *PurchaseUseCase) NextNumber() (string, error) {
	prefix := "PO-" + time.Now().Format("20060102")
	last, err := uc.purchaseRepo.LastNumberForPrefix(prefix)
	if err != nil {
		return "", err
	}
	return nextSequential(prefix, last), nil
}

// nextSequential incrementa el sufijo -NNN de un número con prefijo diario.
func nextSequential(prefix, last string) string {
	seq := 1
	if last != "" {
		var n int
		if _, err := fmt.Sscanf(last[len(prefix):], "-%03d", &n); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

func (uc *PurchaseUseCase) buildResponse(purchase *entity.Purchase) (*dto.PurchaseResponse, error) {
	lines, err := uc.purchaseRepo.ListLines(purchase.ID)
	if err != nil {
		return nil, err
	}
	lineDTOs := make([]dto.PurchaseLineResponse, 0, len(lines))
	for _, l := range lines {
		name := ""
		if m, err := uc.materialRepo.GetByID(l.MaterialID); err == nil && m != nil {
			name = m.Name
		}
		lineDTOs = append(lineDTOs, dto.PurchaseLineResponse{
			ID:           l.ID,
			MaterialID:   l.MaterialID,
			MaterialName: name,
			Qty:          l.Qty,
			Unit:         l.Unit,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal,
		})
	}
	return &dto.PurchaseResponse{
		ID:           purchase.ID,
		Number:       purchase.Number,
		Date:         purchase.Date,
		SupplierID:   purchase.SupplierID,
		Subtotal:     purchase.Subtotal,
		Discount:     purchase.Discount,
		Tax:          purchase.Tax,
		Shipping:     purchase.Shipping,
		Total:        purchase.Total,
		Status:       purchase.Status,
		ReceivedDate: purchase.ReceivedDate,
		Note:         purchase.Note,
		Lines:        lineDTOs,
		CreatedAt:    purchase.CreatedAt,
		UpdatedAt:    purchase.UpdatedAt,
	}, nil
}
