package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,gt=0"`
}

type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=cash card transfer"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type RegistrarVentaRequest struct {
	ListaPrecioID string             `json:"lista_precio_id" validate:"required,uuid"`
	Items         []ItemVentaRequest `json:"items"           validate:"required,min=1,dive"`
	Pagos         []PagoRequest      `json:"pagos"           validate:"required,min=1,dive"`
	Descuento     decimal.Decimal    `json:"descuento"`
	EsDelivery    bool               `json:"es_delivery"`
}

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID               string              `json:"id"`
	CajaID           string              `json:"caja_id"`
	Items            []ItemVentaResponse `json:"items"`
	Pagos            []PagoRequest       `json:"pagos"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Descuento        decimal.Decimal     `json:"descuento"`
	CostoEnvio       decimal.Decimal     `json:"costo_envio"`
	Total            decimal.Decimal     `json:"total"`
	Revertida        bool                `json:"revertida"`
	VentaRevertidaID *string             `json:"venta_revertida_id,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

// VentaFilter acota listados por caja o rango de fechas (prefijo ISO-8601,
// comparación lexicográfica — formato fijo con ceros a la izquierda).
type VentaFilter struct {
	CajaID string
	Desde  string
	Hasta  string
	Page   int
	Limit  int
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
