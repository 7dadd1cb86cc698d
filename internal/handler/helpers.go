package handler

import (
	"errors"
	"net/http"
	"reflect"

	"heladopos/internal/apierror"
	"heladopos/internal/infra"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Registrar decimal.Decimal como tipo numérico para que los tags min=0,
	// gt=0, required no hagan panic ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate bindea el JSON y corre los tags de validación. Devuelve
// false y escribe la respuesta de error si algo falla; el caller debe
// retornar sin escribir otra respuesta.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError mapea errores de dominio a códigos HTTP.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidacion),
		errors.Is(err, service.ErrPagosNoCuadran),
		errors.Is(err, service.ErrSinCajaAbierta):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCajaYaAbierta),
		errors.Is(err, service.ErrYaRevertida):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNoEncontrado),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSyncSinServidor):
		c.JSON(http.StatusPreconditionFailed, apierror.New(err.Error()))
	case errors.Is(err, service.ErrSyncFallido):
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
	case errors.Is(err, infra.ErrCircuitoAbierto):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}
