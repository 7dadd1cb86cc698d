package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey es la clave de contexto bajo la que viaja el id de request.
const RequestIDKey = "request_id"

// RequestID toma el X-Request-ID entrante o genera uno, lo guarda en el
// contexto y lo devuelve en la respuesta para correlacionar logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
