package service

import (
	"context"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── CajaRepository en memoria ─────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	movimientos []model.MovimientoCaja
	// fallaConsulta simula un error transitorio de la base en las lecturas.
	fallaConsulta error
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

func (r *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.cajas[c.ID] = &cp
	return nil
}

func (r *fakeCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCajaRepo) FindAbiertaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	if r.fallaConsulta != nil {
		return nil, r.fallaConsulta
	}
	for _, c := range r.cajas {
		if c.UsuarioID == usuarioID && c.Estado == model.CajaAbierta {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) UltimaCerradaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	var ultima *model.Caja
	for _, c := range r.cajas {
		if c.UsuarioID != usuarioID || c.Estado != model.CajaCerrada || c.CerradaEn == nil {
			continue
		}
		if ultima == nil || c.CerradaEn.After(*ultima.CerradaEn) {
			ultima = c
		}
	}
	if ultima == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ultima
	return &cp, nil
}

func (r *fakeCajaRepo) Update(_ context.Context, c *model.Caja) error {
	cp := *c
	r.cajas[c.ID] = &cp
	return nil
}

func (r *fakeCajaRepo) List(_ context.Context, page, limit int) ([]model.Caja, int64, error) {
	out := make([]model.Caja, 0, len(r.cajas))
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *fakeCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeCajaRepo) FindMovimientoByID(_ context.Context, id uuid.UUID) (*model.MovimientoCaja, error) {
	for i := range r.movimientos {
		if r.movimientos[i].ID == id {
			cp := r.movimientos[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) ListMovimientos(_ context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.CajaID == cajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCajaRepo) MarcarMovimientoRevertidoTx(_ *gorm.DB, id uuid.UUID) error {
	for i := range r.movimientos {
		if r.movimientos[i].ID == id {
			r.movimientos[i].Revertido = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) ListNoSincronizadas(_ context.Context) ([]model.Caja, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		if !c.Sincronizada {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCajaRepo) ListMovimientosNoSincronizados(_ context.Context) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if !m.Sincronizado {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCajaRepo) MarcarSincronizadas(_ context.Context) error {
	for _, c := range r.cajas {
		c.Sincronizada = true
	}
	for i := range r.movimientos {
		r.movimientos[i].Sincronizado = true
	}
	return nil
}

func (r *fakeCajaRepo) PurgarAntes(_ context.Context, corte time.Time) error {
	for id, c := range r.cajas {
		if c.Estado == model.CajaCerrada && c.AbiertaEn.Before(corte) {
			delete(r.cajas, id)
		}
	}
	keep := r.movimientos[:0]
	for _, m := range r.movimientos {
		if !m.CreatedAt.Before(corte) {
			keep = append(keep, m)
		}
	}
	r.movimientos = keep
	return nil
}

// ── VentaRepository en memoria ────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas []model.Venta
}

func newFakeVentaRepo() *fakeVentaRepo { return &fakeVentaRepo{} }

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			cp := r.ventas[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) MarcarRevertidaTx(_ *gorm.DB, id uuid.UUID) error {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			r.ventas[i].Revertida = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) ListPorCaja(_ context.Context, cajaID uuid.UUID) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.CajaID == cajaID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		fecha := v.CreatedAt.Format("2006-01-02")
		if filter.Desde != "" && fecha < filter.Desde {
			continue
		}
		if filter.Hasta != "" && fecha > filter.Hasta {
			continue
		}
		if filter.CajaID != "" && v.CajaID.String() != filter.CajaID {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVentaRepo) ListNoSincronizadas(_ context.Context) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if !v.Sincronizada {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVentaRepo) MarcarSincronizadas(_ context.Context) error {
	for i := range r.ventas {
		r.ventas[i].Sincronizada = true
	}
	return nil
}

func (r *fakeVentaRepo) PurgarAntes(_ context.Context, corte time.Time) error {
	keep := r.ventas[:0]
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(corte) {
			keep = append(keep, v)
		}
	}
	r.ventas = keep
	return nil
}

// ── ProductoRepository en memoria ─────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductoRepo) List(_ context.Context, soloActivos bool) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if soloActivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *fakeProductoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	return r.AjustarStockTx(nil, id, delta)
}

// ── CatalogoRepository en memoria ─────────────────────────────────────────────

type fakeCatalogoRepo struct {
	categorias []model.Categoria
	listas     []model.ListaPrecio
	precios    map[[2]uuid.UUID]model.PrecioProducto
}

func newFakeCatalogoRepo() *fakeCatalogoRepo {
	return &fakeCatalogoRepo{precios: make(map[[2]uuid.UUID]model.PrecioProducto)}
}

func (r *fakeCatalogoRepo) CreateCategoria(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias = append(r.categorias, *c)
	return nil
}

func (r *fakeCatalogoRepo) UpdateCategoria(_ context.Context, c *model.Categoria) error {
	for i := range r.categorias {
		if r.categorias[i].ID == c.ID {
			r.categorias[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCatalogoRepo) ListCategorias(_ context.Context) ([]model.Categoria, error) {
	return append([]model.Categoria(nil), r.categorias...), nil
}

func (r *fakeCatalogoRepo) CreateListaPrecio(_ context.Context, l *model.ListaPrecio) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.listas = append(r.listas, *l)
	return nil
}

func (r *fakeCatalogoRepo) UpdateListaPrecio(_ context.Context, l *model.ListaPrecio) error {
	for i := range r.listas {
		if r.listas[i].ID == l.ID {
			r.listas[i] = *l
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCatalogoRepo) ListListasPrecio(_ context.Context) ([]model.ListaPrecio, error) {
	return append([]model.ListaPrecio(nil), r.listas...), nil
}

func (r *fakeCatalogoRepo) SetPrecio(_ context.Context, pp *model.PrecioProducto) error {
	r.precios[[2]uuid.UUID{pp.ProductoID, pp.ListaPrecioID}] = *pp
	return nil
}

func (r *fakeCatalogoRepo) FindPrecio(_ context.Context, productoID, listaPrecioID uuid.UUID) (*model.PrecioProducto, error) {
	pp, ok := r.precios[[2]uuid.UUID{productoID, listaPrecioID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &pp, nil
}

func (r *fakeCatalogoRepo) ListPrecios(_ context.Context) ([]model.PrecioProducto, error) {
	out := make([]model.PrecioProducto, 0, len(r.precios))
	for _, pp := range r.precios {
		out = append(out, pp)
	}
	return out, nil
}

// ── MovimientoStockRepository en memoria ──────────────────────────────────────

type fakeStockRepo struct {
	movimientos []model.MovimientoStock
}

func newFakeStockRepo() *fakeStockRepo { return &fakeStockRepo{} }

func (r *fakeStockRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *fakeStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeStockRepo) ListPorProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── AjustesRepository en memoria ──────────────────────────────────────────────

type fakeAjustesRepo struct {
	valores map[string]string
}

func newFakeAjustesRepo() *fakeAjustesRepo {
	return &fakeAjustesRepo{valores: make(map[string]string)}
}

func (r *fakeAjustesRepo) Get(_ context.Context, clave string) (string, error) {
	return r.valores[clave], nil
}

func (r *fakeAjustesRepo) Set(_ context.Context, clave, valor string) error {
	r.valores[clave] = valor
	return nil
}

func (r *fakeAjustesRepo) Delete(_ context.Context, clave string) error {
	delete(r.valores, clave)
	return nil
}

// ── SyncSender de prueba ──────────────────────────────────────────────────────

type fakeSender struct {
	fallar   bool
	enviados []*dto.SyncPayload
}

func (s *fakeSender) Enviar(_ context.Context, payload *dto.SyncPayload) error {
	if s.fallar {
		return context.DeadlineExceeded
	}
	s.enviados = append(s.enviados, payload)
	return nil
}
