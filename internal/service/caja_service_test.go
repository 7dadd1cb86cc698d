package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAbrirCaja(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()

	t.Run("primera apertura sin ajuste", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())

		caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
		require.NoError(t, err)
		assert.Equal(t, model.CajaAbierta, caja.Estado)
		assert.True(t, caja.MontoApertura.Equal(d(1000)))
		// Sugerido era 0 y se abrió con 1000: la diferencia queda en el ledger.
		movs, _ := repo.ListMovimientos(ctx, caja.ID)
		require.Len(t, movs, 1)
		assert.Equal(t, model.MovimientoIngreso, movs[0].Tipo)
		assert.True(t, movs[0].Monto.Equal(d(1000)))
	})

	t.Run("apertura igual al sugerido no genera movimiento", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())

		caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", decimal.Zero)
		require.NoError(t, err)
		movs, _ := repo.ListMovimientos(ctx, caja.ID)
		assert.Empty(t, movs)
	})

	t.Run("monto negativo rechazado", func(t *testing.T) {
		svc := NewCajaService(newFakeCajaRepo(), newFakeVentaRepo())
		_, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(-50))
		assert.ErrorIs(t, err, ErrValidacion)
	})

	t.Run("segunda caja abierta rechazada", func(t *testing.T) {
		svc := NewCajaService(newFakeCajaRepo(), newFakeVentaRepo())
		_, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(500))
		require.NoError(t, err)
		_, err = svc.Abrir(ctx, usuarioID, "1", "ses-1", d(500))
		assert.ErrorIs(t, err, ErrCajaYaAbierta)
	})

	t.Run("error del repo no permite segunda caja", func(t *testing.T) {
		// Un error transitorio en la consulta de caja abierta no puede
		// interpretarse como "no hay caja": debe propagarse sin crear nada.
		repo := newFakeCajaRepo()
		repo.fallaConsulta = errors.New("database is locked")
		svc := NewCajaService(repo, newFakeVentaRepo())

		_, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(500))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCajaYaAbierta)
		assert.Empty(t, repo.cajas, "nada se escribe ante un error de consulta")
	})

	t.Run("otro usuario puede abrir en paralelo", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())
		_, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(500))
		require.NoError(t, err)
		_, err = svc.Abrir(ctx, uuid.New(), "1", "ses-2", d(300))
		assert.NoError(t, err)
	})
}

func TestMontoSugerido(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo, newFakeVentaRepo())

	// Sin historial: sugerido 0.
	monto, err := svc.MontoSugerido(ctx, usuarioID)
	require.NoError(t, err)
	assert.True(t, monto.IsZero())

	// Ciclo completo: la próxima apertura sugiere el cierre anterior.
	caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
	require.NoError(t, err)
	_, err = svc.Cerrar(ctx, caja.ID, d(1730))
	require.NoError(t, err)

	monto, err = svc.MontoSugerido(ctx, usuarioID)
	require.NoError(t, err)
	assert.True(t, monto.Equal(d(1730)), "sugerido = cierre de la última caja cerrada")
}

func TestAjusteDeApertura(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo, newFakeVentaRepo())

	caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
	require.NoError(t, err)
	_, err = svc.Cerrar(ctx, caja.ID, d(1000))
	require.NoError(t, err)

	// Se abre con menos que el sugerido: egreso por la diferencia.
	caja2, err := svc.Abrir(ctx, usuarioID, "1", "ses-2", d(800))
	require.NoError(t, err)
	movs, _ := repo.ListMovimientos(ctx, caja2.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovimientoEgreso, movs[0].Tipo)
	assert.True(t, movs[0].Monto.Equal(d(200)), "monto del ajuste es |apertura − sugerido|")
	assert.Contains(t, movs[0].Descripcion, "Ajuste de apertura")
	assert.Contains(t, movs[0].Descripcion, "1000.00")
}

func TestAjusteAperturaNoAlteraElEsperado(t *testing.T) {
	// El monto de apertura ya es el efectivo físico del cajón; el ajuste
	// solo documenta la diferencia contra el cierre anterior. Contarlo
	// además como ingreso o egreso duplicaría la apertura.
	ctx := context.Background()
	usuarioID := uuid.New()
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo, newFakeVentaRepo())

	// Primera apertura: sugerido 0, apertura 1000 → ajuste ingreso de 1000.
	caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
	require.NoError(t, err)
	movs, _ := repo.ListMovimientos(ctx, caja.ID)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].EsAjusteApertura)
	assert.False(t, movs[0].CuentaEnEsperado())

	esperado, err := svc.EfectivoEsperado(ctx, caja)
	require.NoError(t, err)
	assert.True(t, esperado.Equal(d(1000)), "esperado recién abierta = apertura, fue %s", esperado)

	// El resumen tampoco lo cuenta entre los ingresos; la caja cuadra.
	resumen, err := svc.Resumen(ctx, caja.ID)
	require.NoError(t, err)
	assert.True(t, resumen.Ingresos.IsZero())
	assert.True(t, resumen.Esperado.Equal(d(1000)))

	// Segundo ciclo con apertura menor al sugerido: mismo tratamiento.
	_, err = svc.Cerrar(ctx, caja.ID, d(1000))
	require.NoError(t, err)
	caja2, err := svc.Abrir(ctx, usuarioID, "1", "ses-2", d(800))
	require.NoError(t, err)
	esperado, err = svc.EfectivoEsperado(ctx, caja2)
	require.NoError(t, err)
	assert.True(t, esperado.Equal(d(800)), "el egreso de ajuste no descuenta del esperado, fue %s", esperado)

	// Un movimiento manual común sí cuenta.
	_, err = svc.RegistrarMovimiento(ctx, "ses-2", dto.MovimientoManualRequest{
		CajaID: caja2.ID.String(), Tipo: model.MovimientoEgreso, Monto: d(100), Descripcion: "Proveedor",
	})
	require.NoError(t, err)
	esperado, err = svc.EfectivoEsperado(ctx, caja2)
	require.NoError(t, err)
	assert.True(t, esperado.Equal(d(700)))
}

func TestCerrarCaja(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()

	t.Run("cierre con descuadre", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())
		caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
		require.NoError(t, err)

		resumen, err := svc.Cerrar(ctx, caja.ID, d(950))
		require.NoError(t, err)
		require.NotNil(t, resumen)
		require.NotNil(t, resumen.Descuadre)
		assert.True(t, resumen.Descuadre.Equal(d(-50)), "descuadre = declarado − esperado")
		assert.False(t, *resumen.Cuadrada)
	})

	t.Run("cierre exacto cuadra", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())
		caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
		require.NoError(t, err)

		resumen, err := svc.Cerrar(ctx, caja.ID, d(1000))
		require.NoError(t, err)
		require.NotNil(t, resumen.Cuadrada)
		assert.True(t, *resumen.Cuadrada)
	})

	t.Run("cierre de caja inexistente es no-op", func(t *testing.T) {
		svc := NewCajaService(newFakeCajaRepo(), newFakeVentaRepo())
		resumen, err := svc.Cerrar(ctx, uuid.New(), d(100))
		assert.NoError(t, err)
		assert.Nil(t, resumen)
	})

	t.Run("cierre repetido es no-op", func(t *testing.T) {
		repo := newFakeCajaRepo()
		svc := NewCajaService(repo, newFakeVentaRepo())
		caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
		require.NoError(t, err)
		_, err = svc.Cerrar(ctx, caja.ID, d(1000))
		require.NoError(t, err)

		resumen, err := svc.Cerrar(ctx, caja.ID, d(9999))
		assert.NoError(t, err)
		assert.Nil(t, resumen)

		// El primer cierre quedó intacto.
		cerrada, err := repo.FindByID(ctx, caja.ID)
		require.NoError(t, err)
		assert.True(t, cerrada.MontoCierre.Equal(d(1000)))
	})
}

func TestEfectivoEsperado(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()
	cajaRepo := newFakeCajaRepo()
	ventaRepo := newFakeVentaRepo()
	svc := NewCajaService(cajaRepo, ventaRepo)

	caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(1000))
	require.NoError(t, err)

	// Venta mixta: solo la porción en efectivo suma al esperado.
	venta := model.Venta{
		CajaID: caja.ID, UsuarioID: usuarioID, SucursalID: "1",
		Subtotal: d(800), Total: d(800), CreatedAt: time.Now(),
		Pagos: []model.VentaPago{
			{Metodo: model.PagoEfectivo, Monto: d(500)},
			{Metodo: model.PagoTarjeta, Monto: d(300)},
		},
	}
	require.NoError(t, ventaRepo.CreateTx(nil, &venta))

	_, err = svc.RegistrarMovimiento(ctx, "ses-1", dto.MovimientoManualRequest{
		CajaID: caja.ID.String(), Tipo: model.MovimientoIngreso, Monto: d(200), Descripcion: "Fondo extra",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimiento(ctx, "ses-1", dto.MovimientoManualRequest{
		CajaID: caja.ID.String(), Tipo: model.MovimientoEgreso, Monto: d(150), Descripcion: "Proveedor",
	})
	require.NoError(t, err)

	esperado, err := svc.EfectivoEsperado(ctx, caja)
	require.NoError(t, err)
	// 1000 + 500 + 200 − 150
	assert.True(t, esperado.Equal(d(1550)), "esperado = apertura + efectivo + ingresos − egresos, fue %s", esperado)
}

func TestRegistrarMovimiento(t *testing.T) {
	ctx := context.Background()
	usuarioID := uuid.New()
	repo := newFakeCajaRepo()
	svc := NewCajaService(repo, newFakeVentaRepo())
	caja, err := svc.Abrir(ctx, usuarioID, "1", "ses-1", d(500))
	require.NoError(t, err)

	t.Run("monto no positivo rechazado", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, "ses-1", dto.MovimientoManualRequest{
			CajaID: caja.ID.String(), Tipo: model.MovimientoIngreso, Monto: decimal.Zero, Descripcion: "x",
		})
		assert.ErrorIs(t, err, ErrValidacion)
	})

	t.Run("descripcion vacia rechazada", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, "ses-1", dto.MovimientoManualRequest{
			CajaID: caja.ID.String(), Tipo: model.MovimientoEgreso, Monto: d(100), Descripcion: "",
		})
		assert.ErrorIs(t, err, ErrValidacion)
	})

	t.Run("caja cerrada rechazada", func(t *testing.T) {
		_, err := svc.Cerrar(ctx, caja.ID, d(500))
		require.NoError(t, err)
		_, err = svc.RegistrarMovimiento(ctx, "ses-1", dto.MovimientoManualRequest{
			CajaID: caja.ID.String(), Tipo: model.MovimientoIngreso, Monto: d(100), Descripcion: "tarde",
		})
		assert.ErrorIs(t, err, ErrSinCajaAbierta)
	})
}
