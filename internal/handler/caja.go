package handler

import (
	"net/http"
	"strconv"

	"heladopos/internal/apierror"
	"heladopos/internal/dto"
	"heladopos/internal/middleware"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct {
	svc        service.CajaService
	sucursalID string
	// alCerrar se dispara tras un cierre efectivo (best effort, puede ser nil).
	alCerrar func()
}

func NewCajaHandler(svc service.CajaService, sucursalID string, alCerrar func()) *CajaHandler {
	return &CajaHandler{svc: svc, sucursalID: sucursalID, alCerrar: alCerrar}
}

// Abrir crea la sesión de caja del operador con el fondo inicial declarado.
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion := middleware.GetSesion(c)

	caja, err := h.svc.Abrir(c.Request.Context(), sesion.UsuarioID, h.sucursalID, sesion.SesionID, req.MontoApertura)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, caja)
}

// Cerrar fija el monto contado y devuelve el desglose de conciliación.
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("caja_id inválido"))
		return
	}
	resumen, err := h.svc.Cerrar(c.Request.Context(), cajaID, req.MontoCierre)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resumen == nil {
		// Caja inexistente o ya cerrada: el cierre es idempotente.
		c.Status(http.StatusNoContent)
		return
	}
	if h.alCerrar != nil {
		h.alCerrar()
	}
	c.JSON(http.StatusOK, resumen)
}

// Activa devuelve la caja abierta del operador, 404 si no hay.
func (h *CajaHandler) Activa(c *gin.Context) {
	sesion := middleware.GetSesion(c)
	caja, err := h.svc.CajaAbierta(c.Request.Context(), sesion.UsuarioID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if caja == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin caja abierta"))
		return
	}
	c.JSON(http.StatusOK, caja)
}

// MontoSugerido devuelve el fondo inicial propuesto para la próxima apertura.
func (h *CajaHandler) MontoSugerido(c *gin.Context) {
	sesion := middleware.GetSesion(c)
	monto, err := h.svc.MontoSugerido(c.Request.Context(), sesion.UsuarioID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monto_sugerido": monto})
}

// Resumen devuelve el desglose de conciliación de una caja por id.
func (h *CajaHandler) Resumen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resumen, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resumen)
}

// RegistrarMovimiento agrega un ingreso o egreso manual al ledger de la caja.
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion := middleware.GetSesion(c)
	mov, err := h.svc.RegistrarMovimiento(c.Request.Context(), sesion.SesionID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

// Historial lista las cajas paginadas, más reciente primero.
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cajas, total, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cajas, "total": total, "page": page, "limit": limit})
}
