package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoStock registra cada cambio de stock de un producto.
// Se crea automáticamente al vender, al revertir una venta y en ajustes
// manuales. Cantidad con signo: positivo = entrada, negativo = salida.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Tipo       string    `gorm:"not null" json:"type"` // "venta" | "reversion" | "ajuste"
	Cantidad   int       `gorm:"not null" json:"quantity"`
	Motivo     string    `json:"description"`
	// ReferenciaID apunta a la venta que originó el movimiento, si aplica.
	ReferenciaID *uuid.UUID `gorm:"type:uuid" json:"referenceId,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
}

const (
	StockPorVenta     = "venta"
	StockPorReversion = "reversion"
	StockPorAjuste    = "ajuste"
)

// TableName evita la pluralización por defecto de GORM (movimiento_stocks).
func (MovimientoStock) TableName() string { return "movimientos_stock" }

func (m *MovimientoStock) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
