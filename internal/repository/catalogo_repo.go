package repository

import (
	"context"

	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository cubre categorías, listas de precio y precios. El gate de
// sincronización lo usa para armar el snapshot completo del catálogo.
type CatalogoRepository interface {
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	UpdateCategoria(ctx context.Context, c *model.Categoria) error
	ListCategorias(ctx context.Context) ([]model.Categoria, error)

	CreateListaPrecio(ctx context.Context, l *model.ListaPrecio) error
	UpdateListaPrecio(ctx context.Context, l *model.ListaPrecio) error
	ListListasPrecio(ctx context.Context) ([]model.ListaPrecio, error)

	// SetPrecio inserta o reemplaza el precio de (producto, lista).
	SetPrecio(ctx context.Context, pp *model.PrecioProducto) error
	FindPrecio(ctx context.Context, productoID, listaPrecioID uuid.UUID) (*model.PrecioProducto, error)
	ListPrecios(ctx context.Context) ([]model.PrecioProducto, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) UpdateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var cats []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&cats).Error
	return cats, err
}

func (r *catalogoRepo) CreateListaPrecio(ctx context.Context, l *model.ListaPrecio) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *catalogoRepo) UpdateListaPrecio(ctx context.Context, l *model.ListaPrecio) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *catalogoRepo) ListListasPrecio(ctx context.Context) ([]model.ListaPrecio, error) {
	var listas []model.ListaPrecio
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&listas).Error
	return listas, err
}

func (r *catalogoRepo) SetPrecio(ctx context.Context, pp *model.PrecioProducto) error {
	return r.db.WithContext(ctx).Save(pp).Error
}

func (r *catalogoRepo) FindPrecio(ctx context.Context, productoID, listaPrecioID uuid.UUID) (*model.PrecioProducto, error) {
	var pp model.PrecioProducto
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND lista_precio_id = ?", productoID, listaPrecioID).
		First(&pp).Error
	return &pp, err
}

func (r *catalogoRepo) ListPrecios(ctx context.Context) ([]model.PrecioProducto, error) {
	var precios []model.PrecioProducto
	err := r.db.WithContext(ctx).Find(&precios).Error
	return precios, err
}
