package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una producción.
// draft/processing → completed | cancelled; completed y cancelled son finales.
const (
	ProductionStatusDraft      = "draft"
	ProductionStatusProcessing = "processing"
	ProductionStatusCompleted  = "completed"
	ProductionStatusCancelled  = "cancelled"
)

// Production representa una corrida de producción de una receta.
// Al completarse descuenta stock de materiales e incrementa stock del producto;
// una producción completada no se puede eliminar ni volver a transicionar.
type Production struct {
	ID            string
	Number        string // número único legible (PROD-20260827-001)
	Date          time.Time
	RecipeID      string
	ProductID     string
	BatchQty      decimal.Decimal // > 0, multiplica las cantidades de la receta
	YieldQty      decimal.Decimal // unidades de producto terminado resultantes
	TotalHPP      decimal.Decimal
	HPPPerUnit    decimal.Decimal
	Status        string
	CompletedDate *time.Time
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFinal indica si el estado ya no admite transiciones.
func (p *Production) IsFinal() bool {
	return p.Status == ProductionStatusCompleted || p.Status == ProductionStatusCancelled
}
