package service

import (
	"context"
	"errors"
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

type CajaService interface {
	// Abrir crea la sesión de caja del usuario. Si el monto de apertura
	// difiere del sugerido, emite además el movimiento de ajuste.
	Abrir(ctx context.Context, usuarioID uuid.UUID, sucursalID, sesionLoginID string, montoApertura decimal.Decimal) (*model.Caja, error)
	// Cerrar fija estado, monto declarado y hora de cierre; después no se
	// permite ninguna otra mutación. No-op si la caja no existe.
	Cerrar(ctx context.Context, cajaID uuid.UUID, montoCierre decimal.Decimal) (*dto.ResumenCajaResponse, error)
	// CajaAbierta devuelve la única caja abierta del usuario, o nil.
	CajaAbierta(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error)
	// MontoSugerido es el cierre de la última caja cerrada del usuario, o 0.
	MontoSugerido(ctx context.Context, usuarioID uuid.UUID) (decimal.Decimal, error)
	// EfectivoEsperado recalcula siempre desde el ledger; nunca se persiste,
	// para que no pueda desviarse de los registros.
	EfectivoEsperado(ctx context.Context, caja *model.Caja) (decimal.Decimal, error)
	// Resumen es el desglose de conciliación de la sesión, derivado puro.
	Resumen(ctx context.Context, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, sesionLoginID string, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error)
}

type cajaService struct {
	repo      repository.CajaRepository
	ventaRepo repository.VentaRepository
}

func NewCajaService(repo repository.CajaRepository, ventaRepo repository.VentaRepository) CajaService {
	return &cajaService{repo: repo, ventaRepo: ventaRepo}
}

// runTx ejecuta fn dentro de una transacción GORM cuando hay db, o llama
// fn(nil) directo en modo test unitario (repos en memoria).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, sucursalID, sesionLoginID string, montoApertura decimal.Decimal) (*model.Caja, error) {
	if montoApertura.IsNegative() {
		return nil, fmt.Errorf("%w: el monto de apertura no puede ser negativo", ErrValidacion)
	}
	existente, err := s.CajaAbierta(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, ErrCajaYaAbierta
	}

	sugerido, err := s.MontoSugerido(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	caja := &model.Caja{
		SucursalID:    sucursalID,
		UsuarioID:     usuarioID,
		MontoApertura: montoApertura,
		Estado:        model.CajaAbierta,
		AbiertaEn:     time.Now(),
	}

	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}

	// El monto de apertura nunca se altera en silencio: si difiere del
	// sugerido, la diferencia queda explicada en el ledger como movimiento.
	// El flag lo excluye del esperado: la apertura ya refleja el cajón.
	if diff := montoApertura.Sub(sugerido); !diff.IsZero() {
		tipo := model.MovimientoIngreso
		if diff.IsNegative() {
			tipo = model.MovimientoEgreso
		}
		mov := &model.MovimientoCaja{
			CajaID:           caja.ID,
			Tipo:             tipo,
			Monto:            diff.Abs(),
			Descripcion:      fmt.Sprintf("Ajuste de apertura (sugerido $%s)", sugerido.StringFixed(2)),
			SesionLoginID:    sesionLoginID,
			EsAjusteApertura: true,
			CreatedAt:        time.Now(),
		}
		if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("caja_id", caja.ID.String()).
		Str("usuario_id", usuarioID.String()).
		Str("monto_apertura", montoApertura.String()).
		Msg("caja abierta")
	return caja, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, cajaID uuid.UUID, montoCierre decimal.Decimal) (*dto.ResumenCajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		// Caja inexistente: no-op silencioso, el caller valida existencia.
		log.Warn().Str("caja_id", cajaID.String()).Msg("cierre de caja inexistente ignorado")
		return nil, nil
	}
	if caja.Estado == model.CajaCerrada {
		log.Warn().Str("caja_id", cajaID.String()).Msg("cierre de caja ya cerrada ignorado")
		return nil, nil
	}

	ahora := time.Now()
	caja.Estado = model.CajaCerrada
	caja.CerradaEn = &ahora
	caja.MontoCierre = &montoCierre
	if err := s.repo.Update(ctx, caja); err != nil {
		return nil, err
	}

	resumen, err := s.resumen(ctx, caja)
	if err != nil {
		return nil, err
	}

	descuadre := decimal.Zero
	if resumen.Descuadre != nil {
		descuadre = *resumen.Descuadre
	}
	log.Info().
		Str("caja_id", caja.ID.String()).
		Str("monto_cierre", montoCierre.String()).
		Str("descuadre", descuadre.String()).
		Msg("caja cerrada")
	return resumen, nil
}

// ── CajaAbierta ───────────────────────────────────────────────────────────────

func (s *cajaService) CajaAbierta(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	caja, err := s.repo.FindAbiertaPorUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return caja, nil
}

func (s *cajaService) MontoSugerido(ctx context.Context, usuarioID uuid.UUID) (decimal.Decimal, error) {
	ultima, err := s.repo.UltimaCerradaPorUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if ultima.MontoCierre == nil {
		return decimal.Zero, nil
	}
	return *ultima.MontoCierre, nil
}

// ── EfectivoEsperado ──────────────────────────────────────────────────────────
// apertura + Σ pagos en efectivo de ventas vigentes + Σ ingresos − Σ egresos
// (movimientos vigentes). Los pares original/reversión quedan fuera enteros,
// igual que el ajuste de apertura, ya contenido en el monto de apertura.

func (s *cajaService) EfectivoEsperado(ctx context.Context, caja *model.Caja) (decimal.Decimal, error) {
	ventas, err := s.ventaRepo.ListPorCaja(ctx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, caja.ID)
	if err != nil {
		return decimal.Zero, err
	}

	esperado := caja.MontoApertura
	for i := range ventas {
		if !ventas[i].Vigente() {
			continue
		}
		for _, p := range ventas[i].Pagos {
			if p.Metodo == model.PagoEfectivo {
				esperado = esperado.Add(p.Monto)
			}
		}
	}
	for i := range movimientos {
		if !movimientos[i].CuentaEnEsperado() {
			continue
		}
		if movimientos[i].Tipo == model.MovimientoIngreso {
			esperado = esperado.Add(movimientos[i].Monto)
		} else {
			esperado = esperado.Sub(movimientos[i].Monto)
		}
	}
	return esperado, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────

func (s *cajaService) RegistrarMovimiento(ctx context.Context, sesionLoginID string, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error) {
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", ErrValidacion)
	}
	if req.Descripcion == "" {
		return nil, fmt.Errorf("%w: la descripcion no puede estar vacia", ErrValidacion)
	}
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, fmt.Errorf("%w: caja_id invalido", ErrValidacion)
	}
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, fmt.Errorf("caja no encontrada: %w", err)
	}
	if caja.Estado != model.CajaAbierta {
		return nil, ErrSinCajaAbierta
	}

	mov := &model.MovimientoCaja{
		CajaID:        cajaID,
		Tipo:          req.Tipo,
		Monto:         req.Monto,
		Descripcion:   req.Descripcion,
		SesionLoginID: sesionLoginID,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error) {
	cajas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		resp = append(resp, cajaToResponse(&cajas[i]))
	}
	return resp, total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// resumen arma el desglose de conciliación de la caja. Solo lectura.
func (s *cajaService) resumen(ctx context.Context, caja *model.Caja) (*dto.ResumenCajaResponse, error) {
	ventas, err := s.ventaRepo.ListPorCaja(ctx, caja.ID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, caja.ID)
	if err != nil {
		return nil, err
	}

	porMetodo := map[string]decimal.Decimal{
		model.PagoEfectivo:      decimal.Zero,
		model.PagoTarjeta:       decimal.Zero,
		model.PagoTransferencia: decimal.Zero,
	}
	unidades := 0
	for i := range ventas {
		if !ventas[i].Vigente() {
			continue
		}
		for _, p := range ventas[i].Pagos {
			porMetodo[p.Metodo] = porMetodo[p.Metodo].Add(p.Monto)
		}
		for _, it := range ventas[i].Items {
			unidades += it.Cantidad
		}
	}

	ingresos, egresos := decimal.Zero, decimal.Zero
	for i := range movimientos {
		if !movimientos[i].CuentaEnEsperado() {
			continue
		}
		if movimientos[i].Tipo == model.MovimientoIngreso {
			ingresos = ingresos.Add(movimientos[i].Monto)
		} else {
			egresos = egresos.Add(movimientos[i].Monto)
		}
	}

	esperado := caja.MontoApertura.Add(porMetodo[model.PagoEfectivo]).Add(ingresos).Sub(egresos)

	resumen := &dto.ResumenCajaResponse{
		Caja:             cajaToResponse(caja),
		PorMetodo:        porMetodo,
		UnidadesVendidas: unidades,
		VentasEfectivo:   porMetodo[model.PagoEfectivo],
		Ingresos:         ingresos,
		Egresos:          egresos,
		Esperado:         esperado,
	}

	// El descuadre solo existe cuando hay monto declarado. Distinto de cero
	// es advertencia para el supervisor, nunca un error duro.
	if caja.MontoCierre != nil {
		d := caja.MontoCierre.Sub(esperado)
		cuadrada := d.IsZero()
		resumen.Descuadre = &d
		resumen.Cuadrada = &cuadrada
	}
	return resumen, nil
}

// Resumen expone el desglose por id para la vista de conciliación.
func (s *cajaService) Resumen(ctx context.Context, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, fmt.Errorf("caja no encontrada: %w", err)
	}
	return s.resumen(ctx, caja)
}

func cajaToResponse(c *model.Caja) dto.CajaResponse {
	resp := dto.CajaResponse{
		ID:            c.ID.String(),
		SucursalID:    c.SucursalID,
		UsuarioID:     c.UsuarioID.String(),
		MontoApertura: c.MontoApertura,
		MontoCierre:   c.MontoCierre,
		Estado:        c.Estado,
		AbiertaEn:     c.AbiertaEn.Format(time.RFC3339),
	}
	if c.CerradaEn != nil {
		t := c.CerradaEn.Format(time.RFC3339)
		resp.CerradaEn = &t
	}
	return resp
}
