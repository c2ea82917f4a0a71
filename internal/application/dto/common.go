package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y precios viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Límites de paginación aceptados por los listados.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// PageRequest paginación skip/limit para listados.
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// Page devuelve el número de página (1-based) correspondiente a skip.
func (p PageRequest) Page() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Skip/p.Limit + 1
}

// Pages calcula el total de páginas para total registros.
func (p PageRequest) Pages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

// ErrorResponse cuerpo de error HTTP. Error siempre está presente.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
