package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Caja representa una sesión de caja: un cajón de efectivo abierto por un
// usuario en una sucursal. Estado: "abierta" | "cerrada".
// Invariante: a lo sumo una caja abierta por usuario.
type Caja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SucursalID    string          `gorm:"not null;index" json:"branchId"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"openingAmount"`
	// MontoCierre se escribe una única vez, al cerrar. El esperado nunca se
	// persiste: se deriva siempre del ledger (ver CajaService).
	MontoCierre  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closingAmount,omitempty"`
	Estado       string           `gorm:"type:varchar(10);not null;default:'abierta';index" json:"status"`
	AbiertaEn    time.Time        `gorm:"not null;index" json:"openedAt"`
	CerradaEn    *time.Time       `json:"closedAt,omitempty"`
	Sincronizada bool             `gorm:"not null;default:false;index" json:"synced"`
}

const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

func (Caja) TableName() string { return "cajas" }

// BeforeCreate asigna identidad si el caller no la fijó (SQLite no tiene
// gen_random_uuid como Postgres).
func (c *Caja) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
