package service

import (
	"context"
	"fmt"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/rs/zerolog/log"
)

// retencionPostSync es cuánto se conserva un registro después de confirmada
// su sincronización antes de ser candidato a purga.
const retencionPostSync = 48 * time.Hour

// SyncSender envía el payload al servidor central. La implementación HTTP
// vive en infra; los tests inyectan un fake.
type SyncSender interface {
	Enviar(ctx context.Context, payload *dto.SyncPayload) error
}

// SyncService empuja los registros pendientes al servidor central y, tras una
// sincronización confirmada, purga los datos viejos del dispositivo.
type SyncService interface {
	// Sincronizar arma el payload (ledgers pendientes + snapshot completo del
	// catálogo) y lo envía. Solo una respuesta exitosa marca registros como
	// sincronizados y actualiza la marca de última sincronización; cualquier
	// fallo deja todo intacto para el próximo intento.
	Sincronizar(ctx context.Context) (*dto.SyncResultado, error)
	// Purgar borra ventas y movimientos anteriores al corte (última sync
	// menos la ventana de retención) y cajas cerradas abiertas antes del
	// corte. Sin sincronización previa no se purga nada.
	Purgar(ctx context.Context) error
	// UltimaSync devuelve la marca RFC3339 de la última sincronización
	// exitosa, o cadena vacía si nunca hubo una.
	UltimaSync(ctx context.Context) (string, error)
}

type syncService struct {
	ventaRepo    repository.VentaRepository
	cajaRepo     repository.CajaRepository
	productoRepo repository.ProductoRepository
	catalogoRepo repository.CatalogoRepository
	ajustesRepo  repository.AjustesRepository
	sender       SyncSender
	serverURL    string
}

func NewSyncService(
	ventaRepo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	productoRepo repository.ProductoRepository,
	catalogoRepo repository.CatalogoRepository,
	ajustesRepo repository.AjustesRepository,
	sender SyncSender,
	serverURL string,
) SyncService {
	return &syncService{
		ventaRepo:    ventaRepo,
		cajaRepo:     cajaRepo,
		productoRepo: productoRepo,
		catalogoRepo: catalogoRepo,
		ajustesRepo:  ajustesRepo,
		sender:       sender,
		serverURL:    serverURL,
	}
}

func (s *syncService) Sincronizar(ctx context.Context) (*dto.SyncResultado, error) {
	if s.serverURL == "" {
		return nil, ErrSyncSinServidor
	}

	payload, err := s.armarPayload(ctx)
	if err != nil {
		return nil, fmt.Errorf("armando payload de sincronización: %w", err)
	}

	if err := s.sender.Enviar(ctx, payload); err != nil {
		log.Warn().Err(err).Msg("sincronización fallida, registros intactos")
		return nil, fmt.Errorf("%w: %v", ErrSyncFallido, err)
	}

	// Confirmado por el servidor: recién ahora se marcan los registros.
	if err := s.ventaRepo.MarcarSincronizadas(ctx); err != nil {
		return nil, err
	}
	if err := s.cajaRepo.MarcarSincronizadas(ctx); err != nil {
		return nil, err
	}
	ahora := time.Now().Format(time.RFC3339)
	if err := s.ajustesRepo.Set(ctx, model.AjusteUltimaSync, ahora); err != nil {
		return nil, err
	}

	log.Info().
		Int("ventas", len(payload.Sales)).
		Int("cajas", len(payload.CashRegisters)).
		Int("movimientos", len(payload.CashMovements)).
		Msg("sincronización exitosa")

	return &dto.SyncResultado{
		Exito:               true,
		VentasEnviadas:      len(payload.Sales),
		CajasEnviadas:       len(payload.CashRegisters),
		MovimientosEnviados: len(payload.CashMovements),
		UltimaSync:          ahora,
	}, nil
}

func (s *syncService) armarPayload(ctx context.Context) (*dto.SyncPayload, error) {
	ventas, err := s.ventaRepo.ListNoSincronizadas(ctx)
	if err != nil {
		return nil, err
	}
	cajas, err := s.cajaRepo.ListNoSincronizadas(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := s.cajaRepo.ListMovimientosNoSincronizados(ctx)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	categorias, err := s.catalogoRepo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	listas, err := s.catalogoRepo.ListListasPrecio(ctx)
	if err != nil {
		return nil, err
	}
	precios, err := s.catalogoRepo.ListPrecios(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SyncPayload{
		Sales:         ventas,
		CashRegisters: cajas,
		CashMovements: movs,
		Products:      productos,
		Categories:    categorias,
		PriceLists:    listas,
		ProductPrices: precios,
	}, nil
}

func (s *syncService) Purgar(ctx context.Context) error {
	ultima, err := s.ajustesRepo.Get(ctx, model.AjusteUltimaSync)
	if err != nil {
		return err
	}
	if ultima == "" {
		// Nunca se sincronizó: no se descarta nada.
		return nil
	}
	marca, err := time.Parse(time.RFC3339, ultima)
	if err != nil {
		return fmt.Errorf("marca de última sincronización corrupta: %w", err)
	}
	corte := marca.Add(-retencionPostSync)

	if err := s.ventaRepo.PurgarAntes(ctx, corte); err != nil {
		return err
	}
	if err := s.cajaRepo.PurgarAntes(ctx, corte); err != nil {
		return err
	}
	log.Info().Time("corte", corte).Msg("purga de retención completada")
	return nil
}

func (s *syncService) UltimaSync(ctx context.Context) (string, error) {
	return s.ajustesRepo.Get(ctx, model.AjusteUltimaSync)
}
