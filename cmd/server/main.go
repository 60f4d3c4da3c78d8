package main

import (
	"fmt"
	"log"

	"folharh/internal/config"
	"folharh/internal/handler"
	"folharh/internal/importer"
	"folharh/internal/repository/postgres"
	"folharh/internal/router"
	"folharh/internal/service"
	s3storage "folharh/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	unitRepo := postgres.NewEmployerUnitRepo(db)
	employeeRepo := postgres.NewEmployeeRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	runner := importer.NewRunner(employeeRepo, importer.RunnerConfig{
		BatchSize:  cfg.Import.BatchSize,
		BatchPause: cfg.Import.BatchPause(),
	})
	importSvc := service.NewImportService(tenantRepo, unitRepo, employeeRepo, fileRepo, s3Client, runner, &cfg.S3, cfg.Import.PreviewRows)
	rosterSvc := service.NewRosterService(unitRepo, employeeRepo)

	// Initialize handlers
	importH := handler.NewImportHandler(importSvc)
	rosterH := handler.NewRosterHandler(rosterSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, importH, rosterH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
