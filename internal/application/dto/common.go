package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse cuerpo de error 422 para completación de producción:
// incluye el detalle completo de faltantes, no solo el primero.
type InsufficientStockResponse struct {
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	Insufficient []ShortageItemDTO `json:"insufficient"`
}

// ShortageItemDTO un material con stock insuficiente.
type ShortageItemDTO struct {
	MaterialID   string `json:"material_id"`
	MaterialName string `json:"material_name"`
	Needed       string `json:"needed"`
	Available    string `json:"available"`
	Unit         string `json:"unit"`
}
