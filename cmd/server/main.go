package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"pdfworker/internal/config"
	"pdfworker/internal/handler"
	"pdfworker/internal/pdfengine"
	"pdfworker/internal/router"
	"pdfworker/internal/service"
)

// Version identifies the worker build.
const Version = "0.1.0"

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

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the PDF engine
	engine := pdfengine.New()

	// Initialize services
	extractSvc := service.NewExtractionService(engine, &cfg.Extraction)
	textLayerSvc := service.NewTextLayerService(engine, &cfg.Extraction)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractSvc, textLayerSvc, &cfg.Extraction)
	healthH := handler.NewHealthHandler(Version)

	// Setup router
	r := router.Setup(extractH, healthH)

	log.Printf("pdfworker v%s starting on %s (engine=%s, max file size=%dMB)",
		Version, cfg.Server.Addr(), engine.Name(), cfg.Extraction.MaxFileSizeMB)
	if err := r.Run(cfg.Server.Addr()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
