package middleware

import (
	"net/http"

	"heladopos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SesionKey = "sesion"
)

// SesionLocal identifica al operador del dispositivo. La autenticación corre
// en la capa exterior; acá solo llegan los identificadores de usuario y de
// sesión de login, vía headers fijados por esa capa.
type SesionLocal struct {
	UsuarioID uuid.UUID
	SesionID  string
}

// RequireSesion exige los headers de identidad en toda ruta operativa. Sin
// un usuario identificado no hay forma de atribuir cajas ni ventas.
func RequireSesion() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuarioID, err := uuid.Parse(c.GetHeader("X-Usuario-ID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Identificacion de usuario requerida"))
			return
		}
		sesionID := c.GetHeader("X-Sesion-ID")
		if sesionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Sesion de login requerida"))
			return
		}

		c.Set(SesionKey, &SesionLocal{UsuarioID: usuarioID, SesionID: sesionID})
		c.Next()
	}
}

// GetSesion recupera la sesión tipada del contexto de Gin.
func GetSesion(c *gin.Context) *SesionLocal {
	s, _ := c.MustGet(SesionKey).(*SesionLocal)
	return s
}
