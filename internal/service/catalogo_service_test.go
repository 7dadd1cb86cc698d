package service

import (
	"context"
	"testing"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *entorno) catalogoSvc() CatalogoService {
	return NewCatalogoService(e.catalogoRepo, e.productoRepo, e.stockRepo)
}

func TestAjustarStockManual(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	svc := e.catalogoSvc()

	t.Run("delta positivo con auditoria", func(t *testing.T) {
		p, err := svc.AjustarStock(ctx, e.producto.ID, &dto.AjustarStockRequest{Delta: 10, Motivo: "Reposición"})
		require.NoError(t, err)
		assert.Equal(t, 60, p.Stock)

		movs, err := svc.HistorialStock(ctx, e.producto.ID, 10)
		require.NoError(t, err)
		require.Len(t, movs, 1)
		assert.Equal(t, model.StockPorAjuste, movs[0].Tipo)
		assert.Equal(t, 10, movs[0].Cantidad)
		assert.Equal(t, "Reposición", movs[0].Motivo)
	})

	t.Run("delta cero rechazado", func(t *testing.T) {
		_, err := svc.AjustarStock(ctx, e.producto.ID, &dto.AjustarStockRequest{Delta: 0, Motivo: "nada"})
		assert.ErrorIs(t, err, ErrValidacion)
	})

	t.Run("el stock puede quedar negativo", func(t *testing.T) {
		p, err := svc.AjustarStock(ctx, e.producto.ID, &dto.AjustarStockRequest{Delta: -100, Motivo: "Merma"})
		require.NoError(t, err)
		assert.Equal(t, -40, p.Stock)
	})
}

func TestCatalogoCRUD(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	svc := e.catalogoSvc()

	t.Run("crear y actualizar categoria", func(t *testing.T) {
		cat, err := svc.CrearCategoria(ctx, &dto.CategoriaRequest{Nombre: "Tortas", Icono: "🎂"})
		require.NoError(t, err)
		assert.True(t, cat.Activa, "activa por defecto")

		inactiva := false
		cat, err = svc.ActualizarCategoria(ctx, cat.ID, &dto.CategoriaRequest{Nombre: "Tortas heladas", Activa: &inactiva})
		require.NoError(t, err)
		assert.Equal(t, "Tortas heladas", cat.Nombre)
		assert.False(t, cat.Activa)
	})

	t.Run("crear producto con categoria invalida", func(t *testing.T) {
		_, err := svc.CrearProducto(ctx, &dto.ProductoRequest{Nombre: "Frutilla", CategoriaID: "no-es-uuid"})
		assert.ErrorIs(t, err, ErrValidacion)
	})

	t.Run("actualizar producto no toca el stock", func(t *testing.T) {
		antes, _ := e.productoRepo.FindByID(ctx, e.producto.ID)
		p, err := svc.ActualizarProducto(ctx, e.producto.ID, &dto.ProductoRequest{
			Nombre: "Chocolate Amargo", CategoriaID: e.producto.CategoriaID.String(), Stock: 9999,
		})
		require.NoError(t, err)
		assert.Equal(t, "Chocolate Amargo", p.Nombre)
		assert.Equal(t, antes.Stock, p.Stock, "el stock solo cambia por AjustarStock")
	})

	t.Run("fijar y refijar precio", func(t *testing.T) {
		req := &dto.PrecioRequest{
			ProductoID:    e.producto.ID.String(),
			ListaPrecioID: e.lista.ID.String(),
			Precio:        d(380),
		}
		_, err := svc.FijarPrecio(ctx, req)
		require.NoError(t, err)

		pp, err := e.catalogoRepo.FindPrecio(ctx, e.producto.ID, e.lista.ID)
		require.NoError(t, err)
		assert.True(t, pp.Precio.Equal(d(380)), "el precio nuevo reemplaza al anterior")
	})

	t.Run("precio negativo rechazado", func(t *testing.T) {
		_, err := svc.FijarPrecio(ctx, &dto.PrecioRequest{
			ProductoID:    e.producto.ID.String(),
			ListaPrecioID: e.lista.ID.String(),
			Precio:        d(-10),
		})
		assert.ErrorIs(t, err, ErrValidacion)
	})
}
