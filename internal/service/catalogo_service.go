package service

import (
	"context"
	"fmt"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CatalogoService administra categorías, productos, listas de precio y
// precios. Los ajustes manuales de stock dejan rastro en movimientos_stock.
type CatalogoService interface {
	CrearCategoria(ctx context.Context, req *dto.CategoriaRequest) (*model.Categoria, error)
	ActualizarCategoria(ctx context.Context, id uuid.UUID, req *dto.CategoriaRequest) (*model.Categoria, error)
	ListarCategorias(ctx context.Context) ([]model.Categoria, error)

	CrearProducto(ctx context.Context, req *dto.ProductoRequest) (*model.Producto, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req *dto.ProductoRequest) (*model.Producto, error)
	ListarProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error)
	AjustarStock(ctx context.Context, productoID uuid.UUID, req *dto.AjustarStockRequest) (*model.Producto, error)
	HistorialStock(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error)

	CrearListaPrecio(ctx context.Context, req *dto.ListaPrecioRequest) (*model.ListaPrecio, error)
	ActualizarListaPrecio(ctx context.Context, id uuid.UUID, req *dto.ListaPrecioRequest) (*model.ListaPrecio, error)
	ListarListasPrecio(ctx context.Context) ([]model.ListaPrecio, error)

	FijarPrecio(ctx context.Context, req *dto.PrecioRequest) (*model.PrecioProducto, error)
}

type catalogoService struct {
	catalogoRepo repository.CatalogoRepository
	productoRepo repository.ProductoRepository
	stockRepo    repository.MovimientoStockRepository
}

func NewCatalogoService(
	catalogoRepo repository.CatalogoRepository,
	productoRepo repository.ProductoRepository,
	stockRepo repository.MovimientoStockRepository,
) CatalogoService {
	return &catalogoService{
		catalogoRepo: catalogoRepo,
		productoRepo: productoRepo,
		stockRepo:    stockRepo,
	}
}

// ── Categorías ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCategoria(ctx context.Context, req *dto.CategoriaRequest) (*model.Categoria, error) {
	cat := &model.Categoria{
		Nombre: req.Nombre,
		Icono:  req.Icono,
		Activa: true,
	}
	if req.Activa != nil {
		cat.Activa = *req.Activa
	}
	if err := s.catalogoRepo.CreateCategoria(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *catalogoService) ActualizarCategoria(ctx context.Context, id uuid.UUID, req *dto.CategoriaRequest) (*model.Categoria, error) {
	cats, err := s.catalogoRepo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].ID == id {
			cats[i].Nombre = req.Nombre
			cats[i].Icono = req.Icono
			if req.Activa != nil {
				cats[i].Activa = *req.Activa
			}
			if err := s.catalogoRepo.UpdateCategoria(ctx, &cats[i]); err != nil {
				return nil, err
			}
			return &cats[i], nil
		}
	}
	return nil, fmt.Errorf("categoría %s: %w", id, ErrNoEncontrado)
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]model.Categoria, error) {
	return s.catalogoRepo.ListCategorias(ctx)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req *dto.ProductoRequest) (*model.Producto, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("%w: categoria_id inválido", ErrValidacion)
	}
	p := &model.Producto{
		Nombre:      req.Nombre,
		CategoriaID: catID,
		Stock:       req.Stock,
		Unidad:      req.Unidad,
		Activo:      true,
	}
	if p.Unidad == "" {
		p.Unidad = "unidad"
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.productoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req *dto.ProductoRequest) (*model.Producto, error) {
	p, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("%w: categoria_id inválido", ErrValidacion)
	}
	p.Nombre = req.Nombre
	p.CategoriaID = catID
	if req.Unidad != "" {
		p.Unidad = req.Unidad
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	// El stock no se edita acá: solo vía AjustarStock, que deja auditoría.
	if err := s.productoRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error) {
	return s.productoRepo.List(ctx, soloActivos)
}

func (s *catalogoService) AjustarStock(ctx context.Context, productoID uuid.UUID, req *dto.AjustarStockRequest) (*model.Producto, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta no puede ser cero", ErrValidacion)
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, fmt.Errorf("producto %s: %w", productoID, ErrNoEncontrado)
	}
	if err := s.productoRepo.AjustarStock(ctx, productoID, req.Delta); err != nil {
		return nil, err
	}
	mov := &model.MovimientoStock{
		ProductoID: productoID,
		Tipo:       model.StockPorAjuste,
		Cantidad:   req.Delta,
		Motivo:     req.Motivo,
		CreatedAt:  time.Now(),
	}
	if err := s.stockRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	log.Info().
		Str("producto_id", productoID.String()).
		Int("delta", req.Delta).
		Str("motivo", req.Motivo).
		Msg("stock ajustado manualmente")
	return s.productoRepo.FindByID(ctx, productoID)
}

func (s *catalogoService) HistorialStock(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	return s.stockRepo.ListPorProducto(ctx, productoID, limit)
}

// ── Listas de precio ──────────────────────────────────────────────────────────

func (s *catalogoService) CrearListaPrecio(ctx context.Context, req *dto.ListaPrecioRequest) (*model.ListaPrecio, error) {
	l := &model.ListaPrecio{
		Nombre: req.Nombre,
		Clave:  req.Clave,
		Activa: true,
	}
	if req.Activa != nil {
		l.Activa = *req.Activa
	}
	if err := s.catalogoRepo.CreateListaPrecio(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *catalogoService) ActualizarListaPrecio(ctx context.Context, id uuid.UUID, req *dto.ListaPrecioRequest) (*model.ListaPrecio, error) {
	listas, err := s.catalogoRepo.ListListasPrecio(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listas {
		if listas[i].ID == id {
			listas[i].Nombre = req.Nombre
			listas[i].Clave = req.Clave
			if req.Activa != nil {
				listas[i].Activa = *req.Activa
			}
			if err := s.catalogoRepo.UpdateListaPrecio(ctx, &listas[i]); err != nil {
				return nil, err
			}
			return &listas[i], nil
		}
	}
	return nil, fmt.Errorf("lista de precios %s: %w", id, ErrNoEncontrado)
}

func (s *catalogoService) ListarListasPrecio(ctx context.Context) ([]model.ListaPrecio, error) {
	return s.catalogoRepo.ListListasPrecio(ctx)
}

func (s *catalogoService) FijarPrecio(ctx context.Context, req *dto.PrecioRequest) (*model.PrecioProducto, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("%w: producto_id inválido", ErrValidacion)
	}
	listaID, err := uuid.Parse(req.ListaPrecioID)
	if err != nil {
		return nil, fmt.Errorf("%w: lista_precio_id inválido", ErrValidacion)
	}
	if req.Precio.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", ErrValidacion)
	}
	pp := &model.PrecioProducto{
		ProductoID:    productoID,
		ListaPrecioID: listaID,
		Precio:        req.Precio,
	}
	if err := s.catalogoRepo.SetPrecio(ctx, pp); err != nil {
		return nil, err
	}
	return pp, nil
}
