package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInUse        = errors.New("recurso referenciado por otros registros")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// StockShortage describe un material con stock insuficiente para una producción.
type StockShortage struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Needed       decimal.Decimal `json:"needed"`
	Available    decimal.Decimal `json:"available"`
	Unit         string          `json:"unit"`
}

// InsufficientStockError agrupa TODOS los faltantes de una completación de producción,
// no solo el primero, para que el usuario pueda resolverlos en una sola lectura.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (necesario %s %s, disponible %s)",
			s.MaterialName, s.Needed.String(), s.Unit, s.Available.String()))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// AsInsufficientStock devuelve el error estructurado si err lo es.
func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
