package main

import (
	"embed"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"oncoviz/adapters/excel"
	"oncoviz/app"
	"oncoviz/internal/config"
	"oncoviz/ui"
)

//go:embed ui/templates/* ui/static/* ui/docs/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	display, err := config.LoadDisplay(appConfig.Data.DisplayFile)
	if err != nil {
		log.Fatalf("Failed to load display config: %v", err)
	}

	table, report, err := app.LoadSnapshot(appConfig.Data)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	for _, warning := range report.Warnings {
		log.Printf("[Snapshot] %s", warning)
	}

	charts := app.NewChartService(table, display)
	summary := app.NewSummaryService(charts, appConfig.Analysis.MaxParallel)
	export := app.NewExportService(charts, excel.NewExporter())

	server := ui.NewServer(embeddedFiles)
	if err := server.Initialize(charts, summary, export, appConfig.Server.SessionTTL); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("🚀 Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("❌ pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("🚀 Starting outcome visualiser on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
