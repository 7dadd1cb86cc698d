package handler

import (
	"bytes"
	"net/http"

	"heladopos/internal/apierror"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct{ svc service.ReporteService }

func NewReporteHandler(svc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{svc: svc}
}

// Periodo devuelve los agregados de ventas del rango [desde, hasta].
func (h *ReporteHandler) Periodo(c *gin.Context) {
	desde, hasta := c.Query("desde"), c.Query("hasta")
	if desde == "" || hasta == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros desde y hasta requeridos (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.Periodo(c.Request.Context(), desde, hasta)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarCSV descarga las ventas del rango como archivo CSV.
func (h *ReporteHandler) ExportarCSV(c *gin.Context) {
	desde, hasta := c.Query("desde"), c.Query("hasta")
	if desde == "" || hasta == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros desde y hasta requeridos (YYYY-MM-DD)"))
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportarCSV(c.Request.Context(), &buf, desde, hasta); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.NombreArchivoCSV(desde, hasta)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
