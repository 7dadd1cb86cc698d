package repository

import (
	"context"
	"time"

	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CajaRepository es el contrato de acceso al ledger de cajas y movimientos
// manuales. Los servicios dependen de esta interfaz, no de GORM, lo que
// permite tests unitarios con implementaciones en memoria.
type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindAbiertaPorUsuario devuelve la única caja abierta del usuario, o
	// gorm.ErrRecordNotFound. El invariante garantiza a lo sumo una.
	FindAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error)
	// UltimaCerradaPorUsuario devuelve la caja cerrada más reciente del
	// usuario — su MontoCierre es el monto de apertura sugerido.
	UltimaCerradaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error)
	Update(ctx context.Context, c *model.Caja) error
	List(ctx context.Context, page, limit int) ([]model.Caja, int64, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCaja, error)
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error)
	// MarcarMovimientoRevertidoTx fija el flag del original por clave —
	// la única mutación permitida sobre un movimiento.
	MarcarMovimientoRevertidoTx(tx *gorm.DB, id uuid.UUID) error

	// Sync gate
	ListNoSincronizadas(ctx context.Context) ([]model.Caja, error)
	ListMovimientosNoSincronizados(ctx context.Context) ([]model.MovimientoCaja, error)
	MarcarSincronizadas(ctx context.Context) error

	// Purga por retención: solo cajas cerradas; las abiertas se retienen
	// siempre, sin importar su antigüedad.
	PurgarAntes(ctx context.Context, corte time.Time) error

	// DB expone la conexión para que los servicios abran transacciones.
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) FindAbiertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.CajaAbierta).
		First(&c).Error
	return &c, err
}

func (r *cajaRepo) UltimaCerradaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.CajaCerrada).
		Order("cerrada_en DESC").
		First(&c).Error
	return &c, err
}

func (r *cajaRepo) Update(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) List(ctx context.Context, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("abierta_en DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cajas).Error
	return cajas, total, err
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCaja, error) {
	var m model.MovimientoCaja
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("caja_id = ?", cajaID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) MarcarMovimientoRevertidoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.MovimientoCaja{}).
		Where("id = ?", id).
		Update("revertido", true).Error
}

func (r *cajaRepo) ListNoSincronizadas(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).Where("sincronizada = ?", false).Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) ListMovimientosNoSincronizados(ctx context.Context) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("sincronizado = ?", false).Find(&movs).Error
	return movs, err
}

// MarcarSincronizadas filtra por el flag al momento de la confirmación, no
// por un snapshot de ids: registros creados durante el round-trip quedan
// para la próxima corrida.
func (r *cajaRepo) MarcarSincronizadas(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("sincronizada = ?", false).
		Update("sincronizada", true).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).
		Where("sincronizado = ?", false).
		Update("sincronizado", true).Error
}

func (r *cajaRepo) PurgarAntes(ctx context.Context, corte time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("estado = ? AND abierta_en < ?", model.CajaCerrada, corte).
		Delete(&model.Caja{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("created_at < ?", corte).
		Delete(&model.MovimientoCaja{}).Error
}
