package router

import (
	"context"
	"time"

	"heladopos/internal/config"
	"heladopos/internal/handler"
	"heladopos/internal/infra"
	"heladopos/internal/middleware"
	"heladopos/internal/repository"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New arma todo el grafo de dependencias y devuelve el engine configurado.
// Grafo: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB, syncCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadena global de middleware (el orden importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infraestructura ──────────────────────────────────────────────────────
	syncClient := infra.NewSyncClient(cfg.ServerURL, time.Duration(cfg.SyncTimeoutSeconds)*time.Second)

	// ── Repositorios ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	stockRepo := repository.NewMovimientoStockRepository(db)
	ajustesRepo := repository.NewAjustesRepository(db)

	// ── Servicios ────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, cajaSvc, productoRepo, catalogoRepo, stockRepo,
		cfg.SucursalID, decimal.NewFromInt(cfg.CostoEnvio))
	reversionSvc := service.NewReversionService(ventaRepo, cajaRepo, productoRepo, stockRepo)
	reporteSvc := service.NewReporteService(ventaRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, productoRepo, stockRepo)
	syncSvc := service.NewSyncService(ventaRepo, cajaRepo, productoRepo, catalogoRepo, ajustesRepo,
		syncClient, cfg.ServerURL)

	// Al cerrar caja se empuja una sincronización fuera del ciclo del request.
	var sincronizarAlCerrar func()
	if cfg.ServerURL != "" {
		sincronizarAlCerrar = func() {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := syncCB.Execute(func() error {
					_, err := syncSvc.Sincronizar(ctx)
					return err
				}); err != nil {
					log.Warn().Err(err).Msg("sincronización al cierre de caja fallida")
				}
			}()
		}
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc, cfg.SucursalID, sincronizarAlCerrar)
	ventasH := handler.NewVentaHandler(ventaSvc, reversionSvc)
	reportesH := handler.NewReporteHandler(reporteSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	syncH := handler.NewSyncHandler(syncSvc, syncCB)

	// ── Rutas ────────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db))

	v1 := r.Group("/v1", middleware.RequireSesion())
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/activa", cajaH.Activa)
			caja.GET("/monto-sugerido", cajaH.MontoSugerido)
			caja.GET("/:id/resumen", cajaH.Resumen)
			caja.POST("/movimiento", cajaH.RegistrarMovimiento)
			caja.GET("/historial", cajaH.Historial)
		}

		v1.POST("/ventas", ventasH.Registrar)
		v1.GET("/ventas", ventasH.Listar)
		v1.POST("/ventas/:id/revertir", ventasH.Revertir)
		v1.POST("/movimientos/:id/revertir", ventasH.RevertirMovimiento)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/periodo", reportesH.Periodo)
			reportes.GET("/exportar", reportesH.ExportarCSV)
		}

		v1.GET("/categorias", catalogoH.ListarCategorias)
		v1.POST("/categorias", catalogoH.CrearCategoria)
		v1.PUT("/categorias/:id", catalogoH.ActualizarCategoria)

		v1.GET("/productos", catalogoH.ListarProductos)
		v1.POST("/productos", catalogoH.CrearProducto)
		v1.PUT("/productos/:id", catalogoH.ActualizarProducto)
		v1.PATCH("/productos/:id/stock", catalogoH.AjustarStock)
		v1.GET("/productos/:id/movimientos", catalogoH.HistorialStock)

		v1.GET("/listas-precio", catalogoH.ListarListasPrecio)
		v1.POST("/listas-precio", catalogoH.CrearListaPrecio)
		v1.PUT("/listas-precio/:id", catalogoH.ActualizarListaPrecio)
		v1.POST("/precios", catalogoH.FijarPrecio)

		v1.POST("/sync", syncH.Sincronizar)
		v1.GET("/sync/estado", syncH.Estado)
	}

	return r
}
