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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, sesionLoginID string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	caja         CajaService
	productoRepo repository.ProductoRepository
	catalogoRepo repository.CatalogoRepository
	stockRepo    repository.MovimientoStockRepository
	sucursalID   string
	costoEnvio   decimal.Decimal
}

func NewVentaService(
	repo repository.VentaRepository,
	caja CajaService,
	productoRepo repository.ProductoRepository,
	catalogoRepo repository.CatalogoRepository,
	stockRepo repository.MovimientoStockRepository,
	sucursalID string,
	costoEnvio decimal.Decimal,
) VentaService {
	return &ventaService{
		repo:         repo,
		caja:         caja,
		productoRepo: productoRepo,
		catalogoRepo: catalogoRepo,
		stockRepo:    stockRepo,
		sucursalID:   sucursalID,
		costoEnvio:   costoEnvio,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Flujo completo de cobro:
//  1. Exigir caja abierta del usuario (sin caja no hay checkout).
//  2. Resolver cada producto y su precio en la lista activa; congelar
//     nombre y precio unitario en la línea.
//  3. Total = max(0, subtotal − descuento) + costo de envío si es delivery.
//  4. Validar Σ pagos == total.
//  5. TX: crear venta + items + pagos, descontar stock, registrar
//     movimientos de stock.

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, sesionLoginID string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: el carrito esta vacio", ErrValidacion)
	}
	if req.Descuento.IsNegative() {
		return nil, fmt.Errorf("%w: el descuento no puede ser negativo", ErrValidacion)
	}

	caja, err := s.caja.CajaAbierta(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, ErrSinCajaAbierta
	}

	listaID, err := uuid.Parse(req.ListaPrecioID)
	if err != nil {
		return nil, fmt.Errorf("%w: lista_precio_id invalido", ErrValidacion)
	}

	// Resolución de productos y precios, fuera de la transacción.
	items := make([]model.VentaItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: producto_id invalido", ErrValidacion)
		}
		if it.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", it.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("%w: el producto %s esta inactivo", ErrValidacion, p.Nombre)
		}
		pp, err := s.catalogoRepo.FindPrecio(ctx, pid, listaID)
		if err != nil {
			return nil, fmt.Errorf("sin precio para %s en la lista", p.Nombre)
		}
		lineSubtotal := pp.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, model.VentaItem{
			ProductoID:     pid,
			Nombre:         p.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: pp.Precio,
			Subtotal:       lineSubtotal,
		})
	}

	total := subtotal.Sub(req.Descuento)
	if total.IsNegative() {
		total = decimal.Zero
	}
	costoEnvio := decimal.Zero
	if req.EsDelivery {
		costoEnvio = s.costoEnvio
		total = total.Add(costoEnvio)
	}

	totalPagos := decimal.Zero
	for _, pago := range req.Pagos {
		totalPagos = totalPagos.Add(pago.Monto)
	}
	if !totalPagos.Equal(total) {
		return nil, fmt.Errorf("%w: pagos $%s, total $%s", ErrPagosNoCuadran,
			totalPagos.StringFixed(2), total.StringFixed(2))
	}

	venta := model.Venta{
		SucursalID:    s.sucursalID,
		UsuarioID:     usuarioID,
		CajaID:        caja.ID,
		SesionLoginID: sesionLoginID,
		Subtotal:      subtotal,
		Descuento:     req.Descuento,
		CostoEnvio:    costoEnvio,
		EsDelivery:    req.EsDelivery,
		Total:         total,
		ListaPrecioID: listaID,
		CreatedAt:     time.Now(),
		Items:         items,
	}
	for _, pago := range req.Pagos {
		venta.Pagos = append(venta.Pagos, model.VentaPago{Metodo: pago.Metodo, Monto: pago.Monto})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}
		for _, it := range venta.Items {
			if err := s.productoRepo.AjustarStockTx(tx, it.ProductoID, -it.Cantidad); err != nil {
				return fmt.Errorf("descontando stock de %s: %w", it.Nombre, err)
			}
			ref := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:   it.ProductoID,
				Tipo:         model.StockPorVenta,
				Cantidad:     -it.Cantidad,
				Motivo:       "Venta",
				ReferenciaID: &ref,
				CreatedAt:    venta.CreatedAt,
			}
			if err := s.stockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("caja_id", caja.ID.String()).
		Str("total", total.String()).
		Int("items", len(venta.Items)).
		Msg("venta registrada")
	return ventaToResponse(&venta), nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     it.ProductoID.String(),
			Producto:       it.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	pagos := make([]dto.PagoRequest, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	resp := &dto.VentaResponse{
		ID:         v.ID.String(),
		CajaID:     v.CajaID.String(),
		Items:      items,
		Pagos:      pagos,
		Subtotal:   v.Subtotal,
		Descuento:  v.Descuento,
		CostoEnvio: v.CostoEnvio,
		Total:      v.Total,
		Revertida:  v.Revertida,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
	if v.VentaRevertidaID != nil {
		id := v.VentaRevertidaID.String()
		resp.VentaRevertidaID = &id
	}
	return resp
}
