// Package preview serves the simulated chat feed as an HTML page with the converted stylesheet applied,
// so the CSS can be checked in a real browser or a streaming tool's browser source.
package preview

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
	"github.com/gregriff/ytlc/internal/host"
	"github.com/gregriff/ytlc/internal/stylesheet"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options configures a Server. Zero values take sensible defaults.
type Options struct {
	Address      string
	Converter    stylesheet.Converter
	RateLimit    rate.Limit // control requests per second
	RateBurst    int
	ReadyTimeout time.Duration // how long control requests wait for the controller to become ready
	Controls     bool          // render the control buttons on the page
}

// Server is the browser preview. It shares the Controller with any other surface.
type Server struct {
	ctrl    *feed.Controller
	styles  *stylesheet.Store
	log     *log.Logger
	opts    Options
	limiter *rate.Limiter
	server  *http.Server

	mu        sync.RWMutex
	css       string // raw user stylesheet currently applied
	converted string
	loaded    bool

	styleSubs *notifier
}

// NewServer creates a preview server over ctrl. The stylesheet is read from styles on Reload.
func NewServer(ctrl *feed.Controller, styles *stylesheet.Store, logger *log.Logger, opts Options) *Server {
	if opts.Address == "" {
		opts.Address = "127.0.0.1:8123"
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		ctrl:      ctrl,
		styles:    styles,
		log:       logger.WithPrefix("preview"),
		opts:      opts,
		limiter:   rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		styleSubs: newNotifier(),
	}
	s.setStylesheet(stylesheet.DefaultTemplate, false)
	return s
}

// Reload reads the saved stylesheet and applies it.
func (s *Server) Reload(ctx context.Context) error {
	text, err := s.styles.Load(ctx)
	if err != nil {
		return err
	}
	s.setStylesheet(text, true)
	s.log.Info("stylesheet reloaded", "bytes", len(text))
	return nil
}

func (s *Server) setStylesheet(text string, loaded bool) {
	converted := s.opts.Converter.Convert(text)
	s.mu.Lock()
	s.css, s.converted, s.loaded = text, converted, loaded
	s.mu.Unlock()
	if conflicts := stylesheet.Conflicts(text); len(conflicts) > 0 {
		s.log.Warn("base styles redefine user selectors", "selectors", conflicts, "baseFirst", s.opts.Converter.BaseFirst)
	}
	s.styleSubs.notify()
}

// Stylesheet returns the raw stylesheet currently applied.
func (s *Server) Stylesheet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.css
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /style.css", s.handleConvertedCSS)
	mux.HandleFunc("GET /stylesheet.css", s.handleDownload)
	mux.HandleFunc("POST /stylesheet", s.handleUpload)

	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	mux.HandleFunc("GET /api/debug", s.handleDebug)

	mux.Handle("POST /api/chat/{kind}", s.control(s.handleChat))
	mux.Handle("POST /api/superchat", s.control(s.handleSuperChat))
	mux.Handle("POST /api/membership", s.control(s.simple((*feed.Controller).AddMembership)))
	mux.Handle("POST /api/sticker", s.control(s.simple((*feed.Controller).AddSticker)))
	mux.Handle("POST /api/clear", s.control(s.handleClear))
	mux.Handle("POST /api/auto", s.control(s.handleAuto))
	mux.Handle("POST /api/demo", s.control(s.batch((*feed.Controller).TestAll)))
	mux.Handle("POST /api/quick-demo", s.control(s.batch((*feed.Controller).Demo)))
	mux.Handle("POST /api/mass", s.control(s.batch((*feed.Controller).MassChat)))
	mux.Handle("POST /api/reload-css", s.control(s.handleReload))
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
		// no WriteTimeout: /api/stream is long-lived
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview listening", "address", "http://"+s.opts.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down preview server")
	s.styleSubs.closeAll()
	shutdownContext, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownContext); err != nil {
		return err
	}
	return nil
}

type pageData struct {
	Title    string
	Events   []chat.Event
	Controls bool
	Roles    []chat.Kind
	Tiers    []chat.Tier
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	data := pageData{
		Title:    host.BrowserTitle,
		Events:   s.ctrl.Feed().Events(),
		Controls: s.opts.Controls,
		Roles:    chat.ChatKinds,
		Tiers:    chat.Tiers[:],
	}
	if err := templates.ExecuteTemplate(&buf, "page.html", data); err != nil {
		s.log.Error("failed to render page", "err", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleConvertedCSS(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	converted := s.converted
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(converted))
}
