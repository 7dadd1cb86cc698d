package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Categoria clasifica productos ("Cremas", "Paletas", "Bebidas", …).
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre    string    `gorm:"uniqueIndex;not null" json:"name"`
	Icono     string    `json:"icon"`
	Activa    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Categoria) TableName() string { return "categorias" }

func (c *Categoria) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Producto es un artículo del catálogo. El stock puede quedar negativo: al
// revertir una venta el stock vuelve exactamente al valor previo, cosa que
// un clamp en cero rompería.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre      string    `gorm:"not null;index" json:"name"`
	CategoriaID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Unidad      string    `gorm:"not null;default:'unidad'" json:"unit"`
	Activo      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ListaPrecio es una lista de precios activa ("Mostrador", "Delivery",
// "Mayorista"). Cada venta registra con qué lista se cotizó.
type ListaPrecio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre    string    `gorm:"not null" json:"name"`
	Clave     string    `gorm:"uniqueIndex;not null" json:"key"`
	Activa    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (ListaPrecio) TableName() string { return "listas_precio" }

func (l *ListaPrecio) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// PrecioProducto es el precio de un producto en una lista concreta.
// Clave compuesta (producto, lista): un precio por combinación.
type PrecioProducto struct {
	ProductoID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"productId"`
	ListaPrecioID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"priceListId"`
	Precio        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	UpdatedAt     time.Time       `json:"-"`
}

func (PrecioProducto) TableName() string { return "precios_producto" }
