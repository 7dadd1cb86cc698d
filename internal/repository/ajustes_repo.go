package repository

import (
	"context"
	"errors"

	"heladopos/internal/model"

	"gorm.io/gorm"
)

// AjustesRepository implementa el área genérica de configuración local con
// semántica clave-valor: get devuelve "" sin error cuando la clave no existe.
type AjustesRepository interface {
	Get(ctx context.Context, clave string) (string, error)
	Set(ctx context.Context, clave, valor string) error
	Delete(ctx context.Context, clave string) error
}

type ajustesRepo struct{ db *gorm.DB }

func NewAjustesRepository(db *gorm.DB) AjustesRepository { return &ajustesRepo{db: db} }

func (r *ajustesRepo) Get(ctx context.Context, clave string) (string, error) {
	var a model.Ajuste
	err := r.db.WithContext(ctx).First(&a, "clave = ?", clave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return a.Valor, nil
}

func (r *ajustesRepo) Set(ctx context.Context, clave, valor string) error {
	return r.db.WithContext(ctx).Save(&model.Ajuste{Clave: clave, Valor: valor}).Error
}

func (r *ajustesRepo) Delete(ctx context.Context, clave string) error {
	return r.db.WithContext(ctx).Delete(&model.Ajuste{}, "clave = ?", clave).Error
}
