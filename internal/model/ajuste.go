package model

import "time"

// Ajuste es una fila clave→valor del área genérica de configuración local
// (última sincronización, datos del comercio, etc.). Expuesta por
// AjustesRepository con semántica get/set/delete.
type Ajuste struct {
	Clave     string    `gorm:"primaryKey" json:"key"`
	Valor     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"-"`
}

// Claves conocidas del área de ajustes.
const (
	AjusteUltimaSync = "ultima_sincronizacion"
)

func (Ajuste) TableName() string { return "ajustes" }
