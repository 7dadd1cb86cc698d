package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/shopspring/decimal"
)

// etiquetas legibles para el CSV de exportación
var etiquetaMetodo = map[string]string{
	model.PagoEfectivo:      "Efectivo",
	model.PagoTarjeta:       "Tarjeta",
	model.PagoTransferencia: "Transferencia",
}

type ReporteService interface {
	// Periodo agrega todas las ventas del rango [desde, hasta], incluidas las
	// filas de reversión: el par original/reversa netea solo dentro de los
	// totales del período.
	Periodo(ctx context.Context, desde, hasta string) (*dto.ReportePeriodoResponse, error)
	// ExportarCSV escribe las ventas del rango en formato CSV.
	ExportarCSV(ctx context.Context, w io.Writer, desde, hasta string) error
}

type reporteService struct {
	ventaRepo repository.VentaRepository
}

func NewReporteService(ventaRepo repository.VentaRepository) ReporteService {
	return &reporteService{ventaRepo: ventaRepo}
}

func (s *reporteService) Periodo(ctx context.Context, desde, hasta string) (*dto.ReportePeriodoResponse, error) {
	ventas, _, err := s.ventaRepo.List(ctx, dto.VentaFilter{Desde: desde, Hasta: hasta, Limit: -1})
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportePeriodoResponse{
		Desde:     desde,
		Hasta:     hasta,
		PorMetodo: map[string]decimal.Decimal{},
	}
	for _, v := range ventas {
		// Las reversas no cuentan como venta; su total sí netea.
		if v.VentaRevertidaID == nil {
			resp.CantidadVentas++
		}
		resp.Total = resp.Total.Add(v.Total)
		resp.DescuentoTotal = resp.DescuentoTotal.Add(v.Descuento)
		for _, p := range v.Pagos {
			resp.PorMetodo[p.Metodo] = resp.PorMetodo[p.Metodo].Add(p.Monto)
		}
	}
	if resp.CantidadVentas > 0 {
		resp.TicketPromedio = resp.Total.DivRound(decimal.NewFromInt(int64(resp.CantidadVentas)), 2)
	}
	return resp, nil
}

func (s *reporteService) ExportarCSV(ctx context.Context, w io.Writer, desde, hasta string) error {
	ventas, _, err := s.ventaRepo.List(ctx, dto.VentaFilter{Desde: desde, Hasta: hasta, Limit: -1})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Fecha", "Total", "Descuento", "Items", "Medios de Pago"}); err != nil {
		return err
	}
	for _, v := range ventas {
		items := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, fmt.Sprintf("%sx%d", it.Nombre, it.Cantidad))
		}
		pagos := make([]string, 0, len(v.Pagos))
		for _, p := range v.Pagos {
			etiqueta, ok := etiquetaMetodo[p.Metodo]
			if !ok {
				etiqueta = p.Metodo
			}
			pagos = append(pagos, fmt.Sprintf("%s: $%s", etiqueta, p.Monto.StringFixed(2)))
		}
		row := []string{
			v.CreatedAt.Format("2006-01-02 15:04"),
			v.Total.StringFixed(2),
			v.Descuento.StringFixed(2),
			strings.Join(items, "; "),
			strings.Join(pagos, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// NombreArchivoCSV arma el nombre sugerido de descarga para el rango.
func NombreArchivoCSV(desde, hasta string) string {
	return fmt.Sprintf("ventas_%s_%s.csv", desde, hasta)
}
