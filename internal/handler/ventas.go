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

type VentaHandler struct {
	svc       service.VentaService
	reversion service.ReversionService
}

func NewVentaHandler(svc service.VentaService, reversion service.ReversionService) *VentaHandler {
	return &VentaHandler{svc: svc, reversion: reversion}
}

// Registrar procesa el checkout del carrito contra la caja abierta.
func (h *VentaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion := middleware.GetSesion(c)
	venta, err := h.svc.Registrar(c.Request.Context(), sesion.UsuarioID, sesion.SesionID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

// Listar devuelve ventas filtradas por caja o rango de fechas, paginadas.
func (h *VentaHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	filter := dto.VentaFilter{
		CajaID: c.Query("caja_id"),
		Desde:  c.Query("desde"),
		Hasta:  c.Query("hasta"),
		Page:   page,
		Limit:  limit,
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Revertir crea la venta compensatoria de la venta indicada.
func (h *VentaHandler) Revertir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	sesion := middleware.GetSesion(c)
	venta, err := h.reversion.RevertirVenta(c.Request.Context(), id, sesion.SesionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

// RevertirMovimiento crea el movimiento compensatorio del movimiento indicado.
func (h *VentaHandler) RevertirMovimiento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	sesion := middleware.GetSesion(c)
	mov, err := h.reversion.RevertirMovimiento(c.Request.Context(), id, sesion.SesionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}
