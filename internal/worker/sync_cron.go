package worker

// sync_cron.go
// Goroutine de fondo que intenta sincronizar con el servidor central en cada
// tick. Usa el circuit breaker para no martillar un servidor caído y corre la
// purga de retención después de cada sincronización confirmada.

import (
	"context"
	"errors"
	"time"

	"heladopos/internal/infra"
	"heladopos/internal/service"

	"github.com/rs/zerolog/log"
)

// SyncCronConfig junta las dependencias de la goroutine de sincronización.
type SyncCronConfig struct {
	SyncService service.SyncService
	CB          *infra.CircuitBreaker
	// Disponible es la sonda de conectividad; con false el tick se saltea
	// sin contar como fallo del circuito.
	Disponible func(ctx context.Context) bool
	Intervalo  time.Duration
}

// StartSyncCron lanza la goroutine. Respeta el contexto para el shutdown.
func StartSyncCron(ctx context.Context, cfg SyncCronConfig) {
	if cfg.Intervalo <= 0 {
		cfg.Intervalo = time.Hour
	}
	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", cfg.Intervalo).Msg("sync_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sync_cron: apagando")
				return
			case <-ticker.C:
				procesarTick(ctx, cfg)
			}
		}
	}()
}

func procesarTick(ctx context.Context, cfg SyncCronConfig) {
	if cfg.CB.Estado() == infra.CBAbierto {
		log.Debug().Msg("sync_cron: circuito abierto, tick salteado")
		return
	}
	if cfg.Disponible != nil && !cfg.Disponible(ctx) {
		log.Debug().Msg("sync_cron: sin conectividad, tick salteado")
		return
	}

	err := cfg.CB.Execute(func() error {
		_, err := cfg.SyncService.Sincronizar(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, service.ErrSyncSinServidor) {
			// Configuración, no red: no vale la pena reintentar cada tick.
			log.Debug().Msg("sync_cron: sin servidor configurado")
			return
		}
		log.Warn().Err(err).Msg("sync_cron: sincronización fallida, se reintenta en el próximo tick")
		return
	}

	if err := cfg.SyncService.Purgar(ctx); err != nil {
		log.Error().Err(err).Msg("sync_cron: purga de retención fallida")
	}
}
