package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de ítem afectado por un movimiento de stock.
const (
	ItemKindMaterial     = "material"
	ItemKindFinishedGood = "finished_good"
)

// Dirección del movimiento.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// Transacción que causó el movimiento.
const (
	RefKindPurchase   = "purchase"
	RefKindProduction = "production"
	RefKindAdjustment = "adjustment"
)

// StockMovement es una entrada del libro de movimientos de stock (append-only).
// Registra saldo antes/después y la transacción causante; nunca se actualiza
// ni se elimina. StockAfter = StockBefore ± Qty según MovementType: los
// procesadores calculan y pasan valores consistentes, el libro solo registra.
type StockMovement struct {
	ID           string
	Date         time.Time
	ItemKind     string // material | finished_good
	ItemID       string
	ItemName     string
	MovementType string // in | out
	Qty          decimal.Decimal
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	RefKind      string // purchase | production | adjustment
	RefID        string
	RefNumber    string
	Note         string
	CreatedAt    time.Time
}
