package handler

import (
	"net/http"
	"strconv"

	"heladopos/internal/apierror"
	"heladopos/internal/dto"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ── Categorías ────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.CrearCategoria(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CatalogoHandler) ActualizarCategoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.ActualizarCategoria(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	cats, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearProducto(c *gin.Context) {
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.CrearProducto(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogoHandler) ActualizarProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.ActualizarProducto(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	soloActivos := c.DefaultQuery("activos", "true") == "true"
	productos, err := h.svc.ListarProductos(c.Request.Context(), soloActivos)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

// AjustarStock aplica un delta manual y deja el movimiento de auditoría.
func (h *CatalogoHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.AjustarStock(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogoHandler) HistorialStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	movs, err := h.svc.HistorialStock(c.Request.Context(), id, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}

// ── Listas de precio ──────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearListaPrecio(c *gin.Context) {
	var req dto.ListaPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	l, err := h.svc.CrearListaPrecio(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *CatalogoHandler) ActualizarListaPrecio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ListaPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	l, err := h.svc.ActualizarListaPrecio(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *CatalogoHandler) ListarListasPrecio(c *gin.Context) {
	listas, err := h.svc.ListarListasPrecio(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listas)
}

func (h *CatalogoHandler) FijarPrecio(c *gin.Context) {
	var req dto.PrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pp, err := h.svc.FijarPrecio(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pp)
}
