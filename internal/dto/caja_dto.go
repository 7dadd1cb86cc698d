package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

type CerrarCajaRequest struct {
	CajaID      string          `json:"caja_id"      validate:"required,uuid"`
	MontoCierre decimal.Decimal `json:"monto_cierre" validate:"min=0"`
}

type MovimientoManualRequest struct {
	CajaID      string          `json:"caja_id"     validate:"required,uuid"`
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID            string           `json:"id"`
	SucursalID    string           `json:"sucursal_id"`
	UsuarioID     string           `json:"usuario_id"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	MontoCierre   *decimal.Decimal `json:"monto_cierre,omitempty"`
	Estado        string           `json:"estado"`
	AbiertaEn     string           `json:"abierta_en"`
	CerradaEn     *string          `json:"cerrada_en,omitempty"`
}

// ResumenCajaResponse es el desglose de conciliación de una sesión:
// todo derivado del ledger, nada persistido.
type ResumenCajaResponse struct {
	Caja             CajaResponse               `json:"caja"`
	PorMetodo        map[string]decimal.Decimal `json:"ventas_por_metodo"`
	UnidadesVendidas int                        `json:"unidades_vendidas"`
	VentasEfectivo   decimal.Decimal            `json:"ventas_efectivo"`
	Ingresos         decimal.Decimal            `json:"ingresos"`
	Egresos          decimal.Decimal            `json:"egresos"`
	Esperado         decimal.Decimal            `json:"efectivo_esperado"`
	// Descuadre = monto_cierre − esperado; solo presente en cajas cerradas.
	// Cero es "cuadrada"; distinto de cero es advertencia, nunca error.
	Descuadre *decimal.Decimal `json:"descuadre,omitempty"`
	Cuadrada  *bool            `json:"cuadrada,omitempty"`
}

type MovimientoCajaResponse struct {
	ID                    string          `json:"id"`
	CajaID                string          `json:"caja_id"`
	Tipo                  string          `json:"tipo"`
	Monto                 decimal.Decimal `json:"monto"`
	Descripcion           string          `json:"descripcion"`
	Revertido             bool            `json:"revertido"`
	MovimientoRevertidoID *string         `json:"movimiento_revertido_id,omitempty"`
	CreatedAt             string          `json:"created_at"`
}
