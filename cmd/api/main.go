package main

import (
	"log"

	"github.com/joho/godotenv"

	"oncoviz/app"
	"oncoviz/internal/config"
	"oncoviz/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	apiApp, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, charts, summary)
	if err != nil {
		log.Fatal("Failed to create API app:", err)
	}

	log.Fatal(apiApp.Start())
}
