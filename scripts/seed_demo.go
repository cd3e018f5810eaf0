// Script manual para sembrar las cuentas de demostración.
//
// El seed se ejecuta automáticamente al migrar cuando la tabla está
// vacía; este script sirve para repoblar una base recién limpiada.
//
// Uso: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"

	"hero_academy_backend/internal/config"
	"hero_academy_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("No se pudo leer la configuración: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Error al parsear la configuración: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("Error de conexión a la base de datos: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error en la migración: %v", err)
	}

	log.Println("Sembrando cuentas de demostración...")
	if err := database.Seed(db); err != nil {
		log.Fatalf("Error en el seed: %v", err)
	}
	log.Println("Listo.")
}
