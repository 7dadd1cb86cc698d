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
	"gorm.io/gorm"
)

// ReversionService crea entradas compensatorias. La historia nunca se borra
// ni se niega in place: revertir agrega un registro espejo con los números
// negados y la suma del par da cero — disciplina append-only que exige la
// conciliación de caja.
type ReversionService interface {
	RevertirVenta(ctx context.Context, ventaID uuid.UUID, sesionLoginID string) (*dto.VentaResponse, error)
	RevertirMovimiento(ctx context.Context, movimientoID uuid.UUID, sesionLoginID string) (*dto.MovimientoCajaResponse, error)
}

type reversionService struct {
	ventaRepo    repository.VentaRepository
	cajaRepo     repository.CajaRepository
	productoRepo repository.ProductoRepository
	stockRepo    repository.MovimientoStockRepository
}

func NewReversionService(
	ventaRepo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	productoRepo repository.ProductoRepository,
	stockRepo repository.MovimientoStockRepository,
) ReversionService {
	return &reversionService{
		ventaRepo:    ventaRepo,
		cajaRepo:     cajaRepo,
		productoRepo: productoRepo,
		stockRepo:    stockRepo,
	}
}

// ── RevertirVenta ─────────────────────────────────────────────────────────────
// En una sola transacción: crear la venta compensatoria, marcar el original,
// restaurar stock por línea. El guard de doble reversión se re-chequea acá
// mismo — es el que sostiene el ledger si un proceso murió a mitad de camino.

func (s *reversionService) RevertirVenta(ctx context.Context, ventaID uuid.UUID, sesionLoginID string) (*dto.VentaResponse, error) {
	original, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada: %w", err)
	}
	if original.Revertida || original.VentaRevertidaID != nil {
		return nil, ErrYaRevertida
	}

	origID := original.ID
	reversa := model.Venta{
		SucursalID:       original.SucursalID,
		UsuarioID:        original.UsuarioID,
		CajaID:           original.CajaID,
		SesionLoginID:    sesionLoginID,
		Subtotal:         original.Subtotal.Neg(),
		Descuento:        original.Descuento.Neg(),
		CostoEnvio:       original.CostoEnvio.Neg(),
		EsDelivery:       original.EsDelivery,
		Total:            original.Total.Neg(),
		ListaPrecioID:    original.ListaPrecioID,
		CreatedAt:        time.Now(),
		VentaRevertidaID: &origID,
	}
	for _, it := range original.Items {
		reversa.Items = append(reversa.Items, model.VentaItem{
			ProductoID:     it.ProductoID,
			Nombre:         it.Nombre,
			Cantidad:       -it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal.Neg(),
		})
	}
	for _, p := range original.Pagos {
		reversa.Pagos = append(reversa.Pagos, model.VentaPago{
			Metodo: p.Metodo,
			Monto:  p.Monto.Neg(),
		})
	}

	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.ventaRepo.CreateTx(tx, &reversa); err != nil {
			return err
		}
		if err := s.ventaRepo.MarcarRevertidaTx(tx, original.ID); err != nil {
			return err
		}
		// Restaurar stock por la cantidad original (positiva) de cada línea.
		for _, it := range original.Items {
			if err := s.productoRepo.AjustarStockTx(tx, it.ProductoID, it.Cantidad); err != nil {
				return fmt.Errorf("restaurando stock de %s: %w", it.Nombre, err)
			}
			ref := reversa.ID
			mov := &model.MovimientoStock{
				ProductoID:   it.ProductoID,
				Tipo:         model.StockPorReversion,
				Cantidad:     it.Cantidad,
				Motivo:       "Reversión de venta",
				ReferenciaID: &ref,
				CreatedAt:    reversa.CreatedAt,
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
		Str("venta_id", original.ID.String()).
		Str("reversa_id", reversa.ID.String()).
		Msg("venta revertida, stock restaurado")
	return ventaToResponse(&reversa), nil
}

// ── RevertirMovimiento ────────────────────────────────────────────────────────
// Simétrico: tipo opuesto, mismo monto (la magnitud se preserva, el signo lo
// lleva el tipo). Los movimientos no tocan stock.

func (s *reversionService) RevertirMovimiento(ctx context.Context, movimientoID uuid.UUID, sesionLoginID string) (*dto.MovimientoCajaResponse, error) {
	original, err := s.cajaRepo.FindMovimientoByID(ctx, movimientoID)
	if err != nil {
		return nil, fmt.Errorf("movimiento no encontrado: %w", err)
	}
	if original.Revertido || original.MovimientoRevertidoID != nil {
		return nil, ErrYaRevertida
	}

	tipo := model.MovimientoIngreso
	if original.Tipo == model.MovimientoIngreso {
		tipo = model.MovimientoEgreso
	}
	origID := original.ID
	reversa := model.MovimientoCaja{
		CajaID:                original.CajaID,
		Tipo:                  tipo,
		Monto:                 original.Monto,
		Descripcion:           "[REVERSIÓN] " + original.Descripcion,
		SesionLoginID:         sesionLoginID,
		CreatedAt:             time.Now(),
		MovimientoRevertidoID: &origID,
	}

	txErr := runTx(ctx, s.cajaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.cajaRepo.CreateMovimientoTx(tx, &reversa); err != nil {
			return err
		}
		return s.cajaRepo.MarcarMovimientoRevertidoTx(tx, original.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("movimiento_id", original.ID.String()).
		Str("reversa_id", reversa.ID.String()).
		Msg("movimiento de caja revertido")
	return movimientoToResponse(&reversa), nil
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoCajaResponse {
	resp := &dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		CajaID:      m.CajaID.String(),
		Tipo:        m.Tipo,
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		Revertido:   m.Revertido,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.MovimientoRevertidoID != nil {
		id := m.MovimientoRevertidoID.String()
		resp.MovimientoRevertidoID = &id
	}
	return resp
}
