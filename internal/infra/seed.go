package infra

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"heladopos/internal/model"
)

type seedProducto struct {
	nombre    string
	categoria string
	stock     int
	// precio por lista: mostrador, delivery, mayorista
	mostrador int64
	delivery  int64
	mayorista int64
}

var seedCategorias = []model.Categoria{
	{Nombre: "Cremas", Icono: "🍦", Activa: true},
	{Nombre: "Paletas", Icono: "🍡", Activa: true},
	{Nombre: "Agua", Icono: "🧊", Activa: true},
	{Nombre: "Postres", Icono: "🍰", Activa: true},
	{Nombre: "Bebidas", Icono: "🥤", Activa: true},
}

var seedListas = []model.ListaPrecio{
	{Nombre: "Mostrador", Clave: "mostrador", Activa: true},
	{Nombre: "Delivery", Clave: "delivery", Activa: true},
	{Nombre: "Mayorista", Clave: "mayorista", Activa: true},
}

var seedProductos = []seedProducto{
	{"Chocolate", "Cremas", 50, 350, 450, 250},
	{"Vainilla", "Cremas", 50, 350, 450, 250},
	{"Fresa", "Cremas", 45, 350, 450, 250},
	{"Dulce de Leche", "Cremas", 40, 400, 500, 300},
	{"Menta Granizada", "Cremas", 35, 400, 500, 300},
	{"Limón", "Agua", 60, 300, 400, 200},
	{"Maracuyá", "Agua", 40, 300, 400, 200},
	{"Paleta Frutal", "Paletas", 30, 250, 350, 150},
	{"Paleta Crema", "Paletas", 25, 300, 400, 200},
	{"Sundae", "Postres", 20, 450, 550, 350},
	{"Banana Split", "Postres", 15, 500, 600, 400},
	{"Milkshake", "Bebidas", 30, 400, 500, 300},
}

// SeedCatalogo carga el catálogo inicial de la heladería la primera vez que
// arranca el dispositivo. Si ya hay categorías no hace nada: el catálogo en
// uso nunca se pisa.
func SeedCatalogo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Categoria{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categorias := map[string]*model.Categoria{}
		for i := range seedCategorias {
			c := seedCategorias[i]
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			categorias[c.Nombre] = &c
		}

		listas := make([]model.ListaPrecio, len(seedListas))
		for i, l := range seedListas {
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
			listas[i] = l
		}

		for _, sp := range seedProductos {
			p := model.Producto{
				Nombre:      sp.nombre,
				CategoriaID: categorias[sp.categoria].ID,
				Stock:       sp.stock,
				Unidad:      "unidad",
				Activo:      true,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			for i, precio := range []int64{sp.mostrador, sp.delivery, sp.mayorista} {
				pp := model.PrecioProducto{
					ProductoID:    p.ID,
					ListaPrecioID: listas[i].ID,
					Precio:        decimal.NewFromInt(precio),
				}
				if err := tx.Create(&pp).Error; err != nil {
					return err
				}
			}
		}

		log.Info().
			Int("categorias", len(seedCategorias)).
			Int("productos", len(seedProductos)).
			Msg("catálogo inicial cargado")
		return nil
	})
}
