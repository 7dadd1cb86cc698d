package dto

import "github.com/shopspring/decimal"

type CategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
	Icono  string `json:"icono"`
	Activa *bool  `json:"activa"`
}

type ProductoRequest struct {
	Nombre      string `json:"nombre"       validate:"required,min=1"`
	CategoriaID string `json:"categoria_id" validate:"required,uuid"`
	Stock       int    `json:"stock"`
	Unidad      string `json:"unidad"`
	Activo      *bool  `json:"activo"`
}

type ListaPrecioRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
	Clave  string `json:"clave"  validate:"required,min=1"`
	Activa *bool  `json:"activa"`
}

type PrecioRequest struct {
	ProductoID    string          `json:"producto_id"     validate:"required,uuid"`
	ListaPrecioID string          `json:"lista_precio_id" validate:"required,uuid"`
	Precio        decimal.Decimal `json:"precio"          validate:"required"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=1"`
}
