package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"go.uber.org/zap"
)

const (
	// DefaultHost is the interface the server binds to when none is configured
	DefaultHost = "127.0.0.1"
	// DefaultPort is the listening port when none is configured
	DefaultPort = 8080

	shutdownTimeout = 5 * time.Second
)

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	Advertise    bool   // Register the page over mDNS
	InstanceName string // mDNS instance name, defaults to the app name
}

// Addr returns host:port.
func (c Config) Addr() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Server is the browser front end over one shared session.
type Server struct {
	config Config
	ctrl   *session.Controller
	gen    session.Generator
	router *gin.Engine
	live   *liveHub

	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewServer builds the router. ctrl holds the page session; gen serves the
// stateless API.
func NewServer(config Config, ctrl *session.Controller, gen session.Generator) (*Server, error) {
	s := &Server{
		config: config,
		ctrl:   ctrl,
		gen:    gen,
		live:   newLiveHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		now: time.Now,
	}

	tmpl, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	router := gin.New()
	router.Use(logging.GinMiddleware(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.POST("/generate", s.handleGenerateForm)
	router.POST("/tags/:index/delete", s.handleDeleteForm)
	router.POST("/copy", s.handleCopyForm)
	router.GET("/export.csv", s.handleExport)
	router.GET("/ws", s.handleLive)
	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.POST("/generate", s.handleAPIGenerate)
		api.GET("/session", s.handleAPISession)
		api.DELETE("/session/tags/:index", s.handleAPIDeleteTag)
		api.POST("/stats", s.handleAPIStats)
	}

	s.router = router
	ctrl.SetResultsReadyHook(s.live.broadcastResults)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is canceled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	addr := listener.Addr().String()
	logging.Info("Starting Keyword Master web server", zap.String("addr", addr))

	if s.config.Advertise {
		port := s.config.Port
		if tcp, ok := listener.Addr().(*net.TCPAddr); ok {
			port = tcp.Port
		}
		adv, err := Advertise(s.config.InstanceName, port)
		if err != nil {
			// The page is still reachable by address.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			defer adv.Shutdown()
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping web server...")
		s.live.close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		logging.Info("Web server stopped")
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	}
}
