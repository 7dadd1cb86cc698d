package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Venta es una transacción completada contra una caja abierta.
// Invariantes:
//   - Subtotal = Σ subtotales de items
//   - Total = max(0, Subtotal − Descuento) + CostoEnvio
//   - Σ montos de Pagos = Total
//
// Una reversión es otra Venta con todos los campos numéricos negados y
// VentaRevertidaID apuntando al original; el original solo muta su flag
// Revertida. La suma del par da cero en cada campo numérico.
type Venta struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SucursalID       string          `gorm:"not null;index" json:"branchId"`
	UsuarioID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	CajaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"cashRegisterId"`
	SesionLoginID    string          `gorm:"index" json:"loginSessionId"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Descuento        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	CostoEnvio       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"deliveryCost"`
	EsDelivery       bool            `gorm:"not null;default:false" json:"isDelivery"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ListaPrecioID    uuid.UUID       `gorm:"type:uuid;not null" json:"priceListId"`
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`
	Sincronizada     bool            `gorm:"not null;default:false;index" json:"synced"`
	Revertida        bool            `gorm:"not null;default:false" json:"reversed"`
	VentaRevertidaID *uuid.UUID      `gorm:"type:uuid" json:"reversedSaleId,omitempty"`

	Items []VentaItem `gorm:"foreignKey:VentaID" json:"items"`
	Pagos []VentaPago `gorm:"foreignKey:VentaID" json:"payments"`
}

func (Venta) TableName() string { return "ventas" }

func (v *Venta) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Vigente reporta si la venta cuenta para agregados de caja: excluye el
// original revertido y su compensatoria (el par se omite, no se netea).
func (v *Venta) Vigente() bool {
	return !v.Revertida && v.VentaRevertidaID == nil
}

// VentaItem es una línea de venta con nombre y precio congelados al momento
// de vender — cambios posteriores del catálogo no reescriben historia.
type VentaItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	VentaID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	// Nombre es el snapshot del nombre del producto.
	Nombre         string          `gorm:"not null" json:"productName"`
	Cantidad       int             `gorm:"not null" json:"quantity"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (VentaItem) TableName() string { return "venta_items" }

func (i *VentaItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// VentaPago es una porción del pago. Metodo: "cash" | "card" | "transfer"
// (nombres fijados por el protocolo de sincronización).
type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	VentaID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Metodo  string          `gorm:"type:varchar(10);not null" json:"method"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}

const (
	PagoEfectivo      = "cash"
	PagoTarjeta       = "card"
	PagoTransferencia = "transfer"
)

func (VentaPago) TableName() string { return "venta_pagos" }

func (p *VentaPago) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
