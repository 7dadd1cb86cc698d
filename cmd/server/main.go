package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heladopos/internal/config"
	"heladopos/internal/infra"
	"heladopos/internal/repository"
	"heladopos/internal/router"
	"heladopos/internal/service"
	"heladopos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error cargando configuración")
	}
	if cfg.Env == "production" {
		// JSON plano para producción
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error abriendo la base local")
	}
	if err := infra.SeedCatalogo(db); err != nil {
		log.Fatal().Err(err).Msg("error cargando catálogo inicial")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Circuito compartido entre el cron y el disparo manual de sync.
	syncCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	syncClient := infra.NewSyncClient(cfg.ServerURL, time.Duration(cfg.SyncTimeoutSeconds)*time.Second)

	if cfg.ServerURL != "" {
		syncSvc := service.NewSyncService(
			repository.NewVentaRepository(db),
			repository.NewCajaRepository(db),
			repository.NewProductoRepository(db),
			repository.NewCatalogoRepository(db),
			repository.NewAjustesRepository(db),
			syncClient,
			cfg.ServerURL,
		)
		worker.StartSyncCron(ctx, worker.SyncCronConfig{
			SyncService: syncSvc,
			CB:          syncCB,
			Disponible:  syncClient.Disponible,
			Intervalo:   time.Duration(cfg.SyncIntervalMinutes) * time.Minute,
		})
	} else {
		log.Info().Msg("SERVER_URL vacío: sincronización deshabilitada, modo solo local")
	}

	r := router.New(cfg, db, syncCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("heladopos escuchando en :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("error del servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("apagado forzado")
	}
	log.Info().Msg("servidor detenido")
}
