package dto

import "github.com/shopspring/decimal"

// ReportePeriodoResponse agrega ventas en un rango de fechas inclusivo.
// Incluye filas de reversión (netean contra sus originales), igual que la
// vista de reportes histórica.
type ReportePeriodoResponse struct {
	Desde          string                     `json:"desde"`
	Hasta          string                     `json:"hasta"`
	CantidadVentas int                        `json:"cantidad_ventas"`
	Total          decimal.Decimal            `json:"total"`
	TicketPromedio decimal.Decimal            `json:"ticket_promedio"`
	DescuentoTotal decimal.Decimal            `json:"descuento_total"`
	PorMetodo      map[string]decimal.Decimal `json:"por_metodo"`
}
