package server

import (
	"embed"
	"io/fs"
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/megaorm/megaorm-logger/internal/aggregator"
	"github.com/megaorm/megaorm-logger/internal/hub"
	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/model"
)

//go:embed all:web
var webFS embed.FS

// Server exposes the log store over REST and streams live entries over
// WebSocket, with a small embedded dashboard.
type Server struct {
	engine     *gin.Engine
	store      *logstore.LogStore
	hub        *hub.Hub
	aggregator *aggregator.Aggregator
	port       string
}

// New creates a web server over the given store and live pipeline.
func New(store *logstore.LogStore, h *hub.Hub, agg *aggregator.Aggregator, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:     engine,
		store:      store,
		hub:        h,
		aggregator: agg,
		port:       port,
	}

	s.setupRoutes()
	return s
}

// serveEmbedded reads a file from the embedded FS and writes it with the given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	// Pre-read the file at startup so we don't read on every request.
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	// Extract the embedded web/ content.
	webContent, _ := fs.Sub(webFS, "web")

	// Dashboard — serve embedded files directly with correct content types.
	s.engine.GET("/", serveEmbedded(webContent, "index.html", "text/html; charset=utf-8"))
	s.engine.GET("/style.css", serveEmbedded(webContent, "style.css", "text/css; charset=utf-8"))
	s.engine.GET("/app.js", serveEmbedded(webContent, "app.js", "application/javascript; charset=utf-8"))

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		stats := s.aggregator.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"log_file":      s.store.Path(),
			"uptime":        stats.Uptime,
			"files_watched": stats.FilesWatched,
			"eps":           stats.EPS,
		})
	})

	// Metrics API.
	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.aggregator.Snapshot())
	})

	// Log store API.
	s.engine.GET("/api/entries", s.handleGetEntries)
	s.engine.POST("/api/entries", s.handleAppend)
	s.engine.DELETE("/api/entries", s.handleTruncate)
	s.engine.GET("/api/messages", s.handleGetMessages)

	// WebSocket.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// handleGetEntries returns all parsed entries, optionally filtered with
// ?from=<YYYY-MM-DD HH:MM:SS> (strictly after). A missing log file is a
// read failure, reported as 500, never an empty list.
func (s *Server) handleGetEntries(c *gin.Context) {
	var (
		entries []model.LogEntry
		err     error
	)
	if from := c.Query("from"); from != "" {
		if !logstore.ValidDate(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must match YYYY-MM-DD HH:MM:SS"})
			return
		}
		entries, err = s.store.EntriesFrom(from)
	} else {
		entries, err = s.store.Entries()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// handleGetMessages returns only the message text of each entry, with the
// same optional ?from= filter as /api/entries.
func (s *Server) handleGetMessages(c *gin.Context) {
	var (
		messages []string
		err      error
	)
	if from := c.Query("from"); from != "" {
		if !logstore.ValidDate(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must match YYYY-MM-DD HH:MM:SS"})
			return
		}
		messages, err = s.store.MessagesFrom(from)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		messages, err = s.store.Messages()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// handleAppend appends one entry to the log file.
func (s *Server) handleAppend(c *gin.Context) {
	var body struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if err := s.store.Append(body.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "appended"})
}

// handleTruncate empties the log file.
func (s *Server) handleTruncate(c *gin.Context) {
	if err := s.store.Truncate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "truncated"})
}

// Handler returns the underlying HTTP handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
