package repository

import (
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para órdenes de compra.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase, lines []entity.PurchaseLine) error
	GetByID(id string) (*entity.Purchase, error)
	GetForUpdate(id string) (*entity.Purchase, error)
	GetByNumber(number string) (*entity.Purchase, error)
	ListLines(purchaseID string) ([]entity.PurchaseLine, error)
	List(status string, limit, offset int) ([]*entity.Purchase, error)
	// MarkReceived escribe status=received y la fecha de recepción.
	MarkReceived(id string, receivedDate time.Time) error
	// LastNumberForPrefix devuelve el último número que empieza con el prefijo (PO-YYYYMMDD).
	LastNumberForPrefix(prefix string) (string, error)
	Delete(id string) error
}
