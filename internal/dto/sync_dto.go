package dto

import "heladopos/internal/model"

// SyncPayload es el cuerpo del POST /api/sync hacia el servidor central.
// Las claves JSON están fijadas por el protocolo: ledgers solo con registros
// no sincronizados, catálogo siempre completo (snapshot, no delta).
type SyncPayload struct {
	Sales         []model.Venta          `json:"sales"`
	CashRegisters []model.Caja           `json:"cashRegisters"`
	CashMovements []model.MovimientoCaja `json:"cashMovements"`
	Products      []model.Producto       `json:"products"`
	Categories    []model.Categoria      `json:"categories"`
	PriceLists    []model.ListaPrecio    `json:"priceLists"`
	ProductPrices []model.PrecioProducto `json:"productPrices"`
}

// SyncResultado resume el último intento para la UI.
type SyncResultado struct {
	Exito               bool   `json:"exito"`
	VentasEnviadas      int    `json:"ventas_enviadas"`
	CajasEnviadas       int    `json:"cajas_enviadas"`
	MovimientosEnviados int    `json:"movimientos_enviados"`
	UltimaSync          string `json:"ultima_sincronizacion,omitempty"`
	Detalle             string `json:"detalle,omitempty"`
}
