package handler

import (
	"net/http"

	"heladopos/internal/infra"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc service.SyncService
	cb  *infra.CircuitBreaker
}

func NewSyncHandler(svc service.SyncService, cb *infra.CircuitBreaker) *SyncHandler {
	return &SyncHandler{svc: svc, cb: cb}
}

// Sincronizar dispara un intento manual, fuera del cron. También pasa por el
// circuito: si está abierto el servidor viene caído y no tiene sentido.
func (h *SyncHandler) Sincronizar(c *gin.Context) {
	var resultado interface{}
	err := h.cb.Execute(func() error {
		r, err := h.svc.Sincronizar(c.Request.Context())
		if err != nil {
			return err
		}
		resultado = r
		return nil
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultado)
}

// Estado informa la última sincronización y el estado del circuito.
func (h *SyncHandler) Estado(c *gin.Context) {
	ultima, err := h.svc.UltimaSync(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ultima_sincronizacion": ultima,
		"circuito":              h.cb.Estado().String(),
	})
}
