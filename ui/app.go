package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"oncoviz/app"
)

//go:embed templates/* static/* docs/*
var embeddedFiles embed.FS

// App is the sessionless variant of the dashboard: the same page and JSON
// API on a chi router, without overlay-dismissal state or the workbook
// download. It suits running the pipeline behind another front end.
type App struct {
	router      *chi.Mux
	charts      *app.ChartService
	summary     *app.SummaryService
	templates   *template.Template
	methodology template.HTML
	port        string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the sessionless UI application.
func NewApp(cfg Config, charts *app.ChartService, summary *app.SummaryService) (*App, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	source, err := fs.ReadFile(embeddedFiles, "docs/methodology.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read methodology page: %w", err)
	}

	a := &App{
		router:      chi.NewRouter(),
		charts:      charts,
		summary:     summary,
		templates:   templates,
		methodology: renderMarkdown(source),
		port:        cfg.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Static] No embedded static assets: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/methodology", a.handleMethodology)
	a.router.Get("/healthz", a.handleHealthz)

	a.router.Get("/api/options", a.handleOptions)
	a.router.Get("/api/chart", a.handleChart)
	a.router.Get("/api/summary", a.handleSummary)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("Starting outcome visualiser API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the mux, mainly for tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := a.charts.Options()
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title":     opts.Title,
		"Options":   opts,
		"Theme":     a.charts.Display().Theme(),
		"Dismissed": false,
	})
}

func (a *App) handleMethodology(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "methodology.html", map[string]interface{}{
		"Title":   a.charts.Display().Title,
		"Content": a.methodology,
	})
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, buildHealth(a.charts))
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, a.charts.Options())
}

// handleChart recomputes the figure. With no sessions here the overlay
// state is purely a function of the result.
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r.URL.Query())
	res := a.charts.BuildFigure(sel)
	a.respondJSON(w, http.StatusOK, buildChartPayload(res, false))
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r.URL.Query())
	result, err := a.summary.Summarize(r.Context(), sel)
	if err != nil {
		log.Printf("[Summary] Failed: %v", err)
		a.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "summary computation failed"})
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
