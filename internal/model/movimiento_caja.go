package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovimientoCaja es un ajuste manual de efectivo (ingreso o egreso) sobre una
// caja. El ledger es append-only: los movimientos NUNCA se modifican ni se
// borran — revertir crea una entrada compensatoria de tipo opuesto.
//
// Monto se guarda siempre positivo; el sentido lo lleva Tipo.
type MovimientoCaja struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CajaID uuid.UUID       `gorm:"type:uuid;not null;index" json:"cashRegisterId"`
	Tipo   string          `gorm:"type:varchar(10);not null" json:"type"`
	Monto  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	// Descripcion explica el movimiento ante un arqueo ("Proveedor", "Cambio", …).
	Descripcion   string    `gorm:"not null" json:"description"`
	SesionLoginID string    `gorm:"index" json:"loginSessionId,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	// Revertido marca el original cuando existe su compensatorio; es la única
	// mutación permitida sobre un movimiento ya registrado.
	Revertido bool `gorm:"not null;default:false" json:"reversed"`
	// MovimientoRevertidoID se fija en la entrada compensatoria y apunta al
	// original. Un movimiento con este campo es a su vez irreversible.
	MovimientoRevertidoID *uuid.UUID `gorm:"type:uuid" json:"reversedMovementId,omitempty"`
	// EsAjusteApertura marca el movimiento que explica la diferencia entre
	// el fondo declarado al abrir y el cierre anterior. El monto de apertura
	// ya refleja el cajón físico, así que este movimiento no entra en el
	// cálculo del efectivo esperado.
	EsAjusteApertura bool `gorm:"not null;default:false" json:"openingAdjustment,omitempty"`
	Sincronizado     bool `gorm:"not null;default:false;index" json:"synced"`
}

const (
	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)

func (MovimientoCaja) TableName() string { return "movimientos_caja" }

func (m *MovimientoCaja) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Vigente reporta si el movimiento cuenta para el efectivo esperado: quedan
// fuera tanto los originales revertidos como sus compensatorios, de modo que
// el par completo desaparece del cálculo en lugar de netearse.
func (m *MovimientoCaja) Vigente() bool {
	return !m.Revertido && m.MovimientoRevertidoID == nil
}

// CuentaEnEsperado reporta si el movimiento altera el efectivo esperado:
// vigente y distinto del ajuste de apertura, que solo documenta la
// diferencia contra el cierre anterior sin mover el cajón.
func (m *MovimientoCaja) CuentaEnEsperado() bool {
	return m.Vigente() && !m.EsAjusteApertura
}
