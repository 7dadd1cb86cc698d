package repository

import (
	"context"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// MarcarRevertidaTx fija el flag del original por clave primaria — la
	// única mutación permitida sobre una venta ya registrada.
	MarcarRevertidaTx(tx *gorm.DB, id uuid.UUID) error
	ListPorCaja(ctx context.Context, cajaID uuid.UUID) ([]model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// Sync gate
	ListNoSincronizadas(ctx context.Context) ([]model.Venta, error)
	MarcarSincronizadas(ctx context.Context) error

	// Purga por retención de datos.
	PurgarAntes(ctx context.Context, corte time.Time) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagos").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) MarcarRevertidaTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("revertida", true).Error
}

func (r *ventaRepo) ListPorCaja(ctx context.Context, cajaID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagos").
		Where("caja_id = ?", cajaID).
		Order("created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.CajaID != "" {
		q = q.Where("caja_id = ?", filter.CajaID)
	}
	// Rango inclusivo sobre el prefijo de fecha ISO-8601 — formato de ancho
	// fijo con ceros, la comparación lexicográfica es correcta.
	if filter.Desde != "" {
		q = q.Where("DATE(created_at) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(created_at) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Preload("Items").Preload("Pagos").Order("created_at DESC")
	// Limit <= 0 devuelve el rango completo (exportaciones y reportes).
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	err := q.Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListNoSincronizadas(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Pagos").
		Where("sincronizada = ?", false).
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) MarcarSincronizadas(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("sincronizada = ?", false).
		Update("sincronizada", true).Error
}

func (r *ventaRepo) PurgarAntes(ctx context.Context, corte time.Time) error {
	// Borra primero las filas hijas: SQLite no siempre tiene FKs en cascada.
	sub := r.db.Model(&model.Venta{}).Select("id").Where("created_at < ?", corte)
	if err := r.db.WithContext(ctx).Where("venta_id IN (?)", sub).Delete(&model.VentaItem{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("venta_id IN (?)", sub).Delete(&model.VentaPago{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("created_at < ?", corte).Delete(&model.Venta{}).Error
}
