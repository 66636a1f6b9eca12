package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"oncoviz/app"
	"oncoviz/domain/core"
	"oncoviz/internal/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Server is the dashboard web server: the interactive page, its JSON API
// and the workbook download, all on one gin router.
type Server struct {
	router        *gin.Engine
	charts        *app.ChartService
	summary       *app.SummaryService
	export        *app.ExportService
	sessions      *Sessions
	templates     *template.Template
	embeddedFiles embed.FS
	sessionTTL    time.Duration
	methodology   template.HTML
}

// NewServer creates a web server around the embedded UI assets.
func NewServer(embeddedFiles embed.FS) *Server {
	return &Server{
		router:        gin.Default(),
		embeddedFiles: embeddedFiles,
	}
}

// Initialize wires the services, parses the embedded templates and renders
// the methodology page once.
func (s *Server) Initialize(charts *app.ChartService, summary *app.SummaryService, export *app.ExportService, sessionTTL time.Duration) error {
	s.charts = charts
	s.summary = summary
	s.export = export
	s.sessionTTL = sessionTTL
	s.sessions = NewSessions(sessionTTL)

	templatesFS, err := assetSub(s.embeddedFiles, "templates")
	if err != nil {
		return fmt.Errorf("failed to locate templates: %w", err)
	}
	s.templates, err = template.New("").ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	docsFS, err := assetSub(s.embeddedFiles, "docs")
	if err != nil {
		return fmt.Errorf("failed to locate docs: %w", err)
	}
	source, err := fs.ReadFile(docsFS, "methodology.md")
	if err != nil {
		return fmt.Errorf("failed to read methodology page: %w", err)
	}
	s.methodology = renderMarkdown(source)

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// assetSub locates dir inside the embedded FS. The root binary embeds assets
// under "ui/", while the package-level embed used by the chi app and the
// tests is rooted at the package directory; both layouts are accepted.
func assetSub(files embed.FS, dir string) (fs.FS, error) {
	if entries, err := fs.Glob(files, "ui/"+dir+"/*"); err == nil && len(entries) > 0 {
		return fs.Sub(files, "ui/"+dir)
	}
	return fs.Sub(files, dir)
}

// renderMarkdown converts an embedded markdown page to HTML at startup.
func renderMarkdown(source []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	staticFS, err := assetSub(s.embeddedFiles, "static")
	if err != nil {
		log.Printf("[Static] No embedded static assets: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/methodology", s.handleMethodology)
	s.router.GET("/healthz", s.handleHealthz)

	s.router.GET("/api/options", s.handleOptions)
	s.router.GET("/api/chart", s.handleChart)
	s.router.GET("/api/summary", s.handleSummary)
	s.router.GET("/api/export.xlsx", s.handleExport)
	s.router.POST("/api/notice/dismiss", s.handleDismiss)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting outcome visualiser on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// sessionID returns the caller's session, minting a cookie on first contact.
func (s *Server) sessionID(c *gin.Context) core.SessionID {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, err := core.ParseSessionID(raw); err == nil {
			s.sessions.Touch(id)
			return id
		}
	}

	id := core.SessionID(core.NewID())
	c.SetCookie(sessionCookie, id.String(), int(s.sessionTTL.Seconds()), "/", "", false, true)
	s.sessions.Touch(id)
	return id
}

func (s *Server) handleIndex(c *gin.Context) {
	sid := s.sessionID(c)
	opts := s.charts.Options()
	s.renderTemplate(c, "index.html", gin.H{
		"Title":     opts.Title,
		"Options":   opts,
		"Theme":     s.charts.Display().Theme(),
		"Dismissed": s.sessions.Dismissed(sid),
	})
}

func (s *Server) handleMethodology(c *gin.Context) {
	s.renderTemplate(c, "methodology.html", gin.H{
		"Title":   s.charts.Display().Title,
		"Content": s.methodology,
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, buildHealth(s.charts))
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.charts.Options())
}

// handleChart is the recompute endpoint. Each call clears the session's
// dismissal flag first: a fresh selection brings the overlay back whenever
// the new state warrants one.
func (s *Server) handleChart(c *gin.Context) {
	sid := s.sessionID(c)
	s.sessions.Reset(sid)

	sel := parseSelection(c.Request.URL.Query())
	res := s.charts.BuildFigure(sel)
	c.JSON(http.StatusOK, buildChartPayload(res, false))
}

func (s *Server) handleSummary(c *gin.Context) {
	sel := parseSelection(c.Request.URL.Query())
	result, err := s.summary.Summarize(c.Request.Context(), sel)
	if err != nil {
		log.Printf("[Summary] Failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary computation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleExport buffers the workbook before answering so a failed export
// never leaks attachment headers over an error body.
func (s *Server) handleExport(c *gin.Context) {
	sel := parseSelection(c.Request.URL.Query())

	var buf bytes.Buffer
	result, err := s.export.ExportWorkbook(&buf, sel)
	if err != nil {
		if errors.GetCode(err) == errors.CodeInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[Export] Failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleDismiss(c *gin.Context) {
	sid := s.sessionID(c)
	s.sessions.Dismiss(sid)
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
