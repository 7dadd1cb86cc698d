package infra

import (
	"fmt"

	"heladopos/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la base SQLite local y corre AutoMigrate sobre todos los
// modelos. El dispositivo es dueño de su esquema: no hay servidor de base de
// datos, el archivo vive junto al binario.
func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abriendo %s: %w", path, err)
	}

	// SQLite maneja un escritor por vez; serializar desde el pool evita
	// SQLITE_BUSY bajo carga.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.ListaPrecio{},
		&model.PrecioProducto{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Venta{},
		&model.VentaItem{},
		&model.VentaPago{},
		&model.MovimientoStock{},
		&model.Ajuste{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
