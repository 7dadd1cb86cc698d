// cmd/seed/main.go — Carga el catálogo inicial de demo en la base local.
// Uso: go run cmd/seed/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"heladopos/internal/infra"
)

func main() {
	path := os.Getenv("DATA_PATH")
	if path == "" {
		path = "heladopos.db"
	}

	db, err := infra.NewDatabase(path)
	if err != nil {
		log.Fatalf("error abriendo %s: %v", path, err)
	}
	if err := infra.SeedCatalogo(db); err != nil {
		log.Fatalf("error cargando catálogo: %v", err)
	}
	fmt.Printf("✅ Catálogo inicial cargado en %s\n", path)
}
