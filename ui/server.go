package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	domainDataset "companydir/domain/dataset"
	"companydir/internal"

	"github.com/gin-gonic/gin"
)

//go:embed templates static
var embeddedFiles embed.FS

// Options holds presentation settings
type Options struct {
	Title    string
	Intro    string // markdown, rendered once at startup
	PageSize int
}

// Server serves the directory page. It holds a reference to the loaded
// Dataset and never mutates it; selection state lives in each request.
type Server struct {
	router    *gin.Engine
	dataset   *domainDataset.Dataset
	templates *template.Template
	options   Options
	intro     template.HTML
	logger    *internal.Logger
}

// NewServer parses the embedded templates and registers the routes
func NewServer(ds *domainDataset.Dataset, options Options, logger *internal.Logger) (*Server, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	if options.PageSize < 1 {
		options.PageSize = 10
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := parseTemplates(embeddedFiles)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		dataset:   ds,
		templates: templates,
		options:   options,
		intro:     renderMarkdown(options.Intro),
		logger:    logger.Named("UI"),
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
}

// setupMiddleware configures Gin middleware and static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// Handler returns the HTTP handler for the page
func (s *Server) Handler() http.Handler {
	return s.router
}

// Records returns the number of loaded records
func (s *Server) Records() int {
	return s.dataset.Len()
}

// Categories returns the size of the CategorySet
func (s *Server) Categories() int {
	return len(s.dataset.Categories())
}

// Dropped returns how many source rows were skipped at load
func (s *Server) Dropped() int {
	return s.dataset.Dropped()
}
