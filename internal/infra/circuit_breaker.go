package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Corta los intentos de sincronización cuando el servidor central viene
// fallando seguido, en vez de martillarlo en cada tick del cron.
//
// Estados:
//   - Cerrado:    operación normal, los intentos pasan
//   - Abierto:    todo intento falla al instante
//   - Semiabierto: se deja pasar una sonda para probar recuperación

type CBEstado int

const (
	CBCerrado CBEstado = iota
	CBAbierto
	CBSemiabierto
)

func (s CBEstado) String() string {
	switch s {
	case CBCerrado:
		return "cerrado"
	case CBAbierto:
		return "abierto"
	case CBSemiabierto:
		return "semiabierto"
	default:
		return "desconocido"
	}
}

// ErrCircuitoAbierto se devuelve al invocar Execute con el circuito abierto.
var ErrCircuitoAbierto = errors.New("circuito abierto")

type CircuitBreakerConfig struct {
	UmbralFallos   int           // fallos consecutivos para abrir (default: 3)
	UmbralExitos   int           // éxitos en semiabierto para cerrar (default: 1)
	TimeoutAbierto time.Duration // cuánto queda abierto antes de sondear (default: 5m)
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		UmbralFallos:   3,
		UmbralExitos:   1,
		TimeoutAbierto: 5 * time.Minute,
	}
}

type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu             sync.Mutex
	estado         CBEstado
	fallosSeguidos int
	exitosSonda    int
	// abiertoHasta es el instante en que el circuito abierto pasa a admitir
	// una sonda. Solo tiene sentido con estado == CBAbierto.
	abiertoHasta time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.UmbralFallos <= 0 {
		cfg.UmbralFallos = 3
	}
	if cfg.UmbralExitos <= 0 {
		cfg.UmbralExitos = 1
	}
	if cfg.TimeoutAbierto <= 0 {
		cfg.TimeoutAbierto = 5 * time.Minute
	}
	return &CircuitBreaker{cfg: cfg}
}

func (cb *CircuitBreaker) Estado() CBEstado {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.estadoActual()
}

// estadoActual promueve abierto → semiabierto cuando venció el plazo.
// Requiere el lock tomado.
func (cb *CircuitBreaker) estadoActual() CBEstado {
	if cb.estado == CBAbierto && !time.Now().Before(cb.abiertoHasta) {
		cb.estado = CBSemiabierto
		cb.exitosSonda = 0
	}
	return cb.estado
}

// Execute corre fn a través del circuito. Devuelve ErrCircuitoAbierto de
// inmediato si está abierto.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.estadoActual() == CBAbierto {
		cb.mu.Unlock()
		return ErrCircuitoAbierto
	}
	cb.mu.Unlock()

	err := fn()
	cb.registrar(err)
	return err
}

// registrar aplica el resultado de un intento a la máquina de estados.
func (cb *CircuitBreaker) registrar(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if cb.estado == CBSemiabierto {
			cb.exitosSonda++
			if cb.exitosSonda >= cb.cfg.UmbralExitos {
				cb.estado = CBCerrado
			}
		}
		cb.fallosSeguidos = 0
		return
	}

	if cb.estado == CBSemiabierto {
		// la sonda falló: plazo completo de nuevo
		cb.abrir()
		return
	}
	cb.fallosSeguidos++
	if cb.fallosSeguidos >= cb.cfg.UmbralFallos {
		cb.abrir()
	}
}

// abrir requiere el lock tomado.
func (cb *CircuitBreaker) abrir() {
	cb.estado = CBAbierto
	cb.abiertoHasta = time.Now().Add(cb.cfg.TimeoutAbierto)
	cb.fallosSeguidos = 0
	cb.exitosSonda = 0
}
