// @title Academia de Héroes U.A. API
// @version 1.0
// @description Servidor backend para la gestión de entrenamientos de la U.A. High School.

// @contact.name Soporte API
// @contact.email soporte@ua.edu

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"hero_academy_backend/internal/app"
	"hero_academy_backend/internal/config"
	"hero_academy_backend/pkg/configwatcher"
	"hero_academy_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "ejecutar solo la migración de la base de datos y salir")
	migrate := flag.Bool("migrate", false, "forzar la migración al arrancar (también en modo release)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.ReloadConfig)

	application.Run()
}
