package config

import (
	"github.com/spf13/viper"
)

// Config agrupa toda la configuración de runtime, cargada de variables de
// entorno. Cada campo mapea 1:1 a una env var.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Persistencia local (SQLite embebido — offline first)
	DataPath string `mapstructure:"DATA_PATH"`

	// Sincronización remota. ServerURL vacío = sync deshabilitada.
	ServerURL           string `mapstructure:"SERVER_URL"`
	SyncIntervalMinutes int    `mapstructure:"SYNC_INTERVAL_MINUTES"`
	SyncTimeoutSeconds  int    `mapstructure:"SYNC_TIMEOUT_SECONDS"`

	// Negocio
	SucursalID string `mapstructure:"SUCURSAL_ID"`
	CostoEnvio int64  `mapstructure:"COSTO_ENVIO"`
}

// Load lee configuración de env vars (y un .env opcional para desarrollo).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8400)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_PATH", "heladopos.db")
	viper.SetDefault("SERVER_URL", "")
	viper.SetDefault("SYNC_INTERVAL_MINUTES", 60)
	viper.SetDefault("SYNC_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SUCURSAL_ID", "1")
	viper.SetDefault("COSTO_ENVIO", 500)

	// El .env es opcional — no falla si no existe
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
