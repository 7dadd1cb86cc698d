package service

import "errors"

// Errores de dominio. Se comparan con errors.Is; los handlers los traducen a
// códigos HTTP. Ninguno es fatal: toda falla degrada a "quedarse en el estado
// actual, informar y permitir reintento".
var (
	// ErrYaRevertida: el registro ya fue revertido, o es en sí una
	// reversión — revertir una reversión se rechaza siempre.
	ErrYaRevertida = errors.New("el registro ya fue revertido")

	// ErrSinCajaAbierta bloquea el checkout hasta abrir una caja.
	ErrSinCajaAbierta = errors.New("no hay caja abierta para el usuario")

	// ErrCajaYaAbierta: el invariante permite a lo sumo una caja abierta
	// por usuario.
	ErrCajaYaAbierta = errors.New("ya existe una caja abierta para el usuario")

	// ErrValidacion: monto no positivo, descripción vacía, carrito vacío.
	// Se intercepta antes de tocar el ledger.
	ErrValidacion = errors.New("datos invalidos")

	// ErrPagosNoCuadran: la suma de pagos no iguala el total de la venta.
	ErrPagosNoCuadran = errors.New("la suma de pagos no iguala el total")

	// ErrSyncFallido: timeout, error de red o respuesta no exitosa. Se
	// loguea y se reintenta en el próximo tick; nunca pierde datos locales.
	ErrSyncFallido = errors.New("sincronizacion fallida")

	// ErrSyncSinServidor: no hay SERVER_URL configurada.
	ErrSyncSinServidor = errors.New("sin servidor de sincronizacion configurado")

	// ErrNoEncontrado: el recurso referenciado no existe.
	ErrNoEncontrado = errors.New("no encontrado")
)
