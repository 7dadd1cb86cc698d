package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRed = errors.New("conexion rechazada")

func TestCircuitBreaker(t *testing.T) {
	t.Run("abre tras fallos consecutivos", func(t *testing.T) {
		cb := NewCircuitBreaker(CircuitBreakerConfig{UmbralFallos: 3, UmbralExitos: 1, TimeoutAbierto: time.Minute})

		for i := 0; i < 3; i++ {
			err := cb.Execute(func() error { return errRed })
			assert.ErrorIs(t, err, errRed)
		}
		assert.Equal(t, CBAbierto, cb.Estado())

		// Con el circuito abierto ni se intenta.
		llamado := false
		err := cb.Execute(func() error { llamado = true; return nil })
		assert.ErrorIs(t, err, ErrCircuitoAbierto)
		assert.False(t, llamado)
	})

	t.Run("un exito en cerrado resetea el conteo", func(t *testing.T) {
		cb := NewCircuitBreaker(CircuitBreakerConfig{UmbralFallos: 2, UmbralExitos: 1, TimeoutAbierto: time.Minute})

		require.Error(t, cb.Execute(func() error { return errRed }))
		require.NoError(t, cb.Execute(func() error { return nil }))
		require.Error(t, cb.Execute(func() error { return errRed }))
		assert.Equal(t, CBCerrado, cb.Estado(), "un fallo aislado no abre el circuito")
	})

	t.Run("semiabierto tras el timeout y cierra con la sonda", func(t *testing.T) {
		cb := NewCircuitBreaker(CircuitBreakerConfig{UmbralFallos: 1, UmbralExitos: 1, TimeoutAbierto: 10 * time.Millisecond})

		require.Error(t, cb.Execute(func() error { return errRed }))
		require.Equal(t, CBAbierto, cb.Estado())

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, CBSemiabierto, cb.Estado())

		require.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, CBCerrado, cb.Estado())
	})

	t.Run("sonda fallida reabre", func(t *testing.T) {
		cb := NewCircuitBreaker(CircuitBreakerConfig{UmbralFallos: 1, UmbralExitos: 1, TimeoutAbierto: 10 * time.Millisecond})

		require.Error(t, cb.Execute(func() error { return errRed }))
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, CBSemiabierto, cb.Estado())

		require.Error(t, cb.Execute(func() error { return errRed }))
		assert.Equal(t, CBAbierto, cb.Estado())
	})
}
