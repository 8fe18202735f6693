package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
	"github.com/gregriff/ytlc/internal/stylesheet"
)

// maxStylesheetBytes caps uploads.
const maxStylesheetBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// control wraps a mutating handler: requests are rate limited, and held until the controller is ready.
func (s *Server) control(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.opts.ReadyTimeout)
		defer cancel()
		if err := s.ctrl.WaitReady(ctx); err != nil {
			s.log.Warn("control request before simulator was ready", "path", r.URL.Path)
			http.Error(w, "simulator not ready", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	})
}

// simple adapts a controller method that adds one event.
func (s *Server) simple(add func(*feed.Controller) chat.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, add(s.ctrl))
	}
}

// batch adapts a controller method that schedules several events.
func (s *Server) batch(start func(*feed.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		start(s.ctrl)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("kind")
	if name == "random" {
		writeJSON(w, http.StatusCreated, s.ctrl.AddRandom())
		return
	}
	kind, err := chat.ParseKind(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch kind {
	case chat.KindSuperChat:
		writeJSON(w, http.StatusCreated, s.ctrl.AddSuperChat())
	case chat.KindMembership:
		writeJSON(w, http.StatusCreated, s.ctrl.AddMembership())
	case chat.KindSticker:
		writeJSON(w, http.StatusCreated, s.ctrl.AddSticker())
	default:
		writeJSON(w, http.StatusCreated, s.ctrl.AddKind(kind))
	}
}

func (s *Server) handleSuperChat(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tier")
	if raw == "" {
		writeJSON(w, http.StatusCreated, s.ctrl.AddSuperChat())
		return
	}
	tier, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "tier must be a number", http.StatusBadRequest)
		return
	}
	// out-of-range tiers fall back to tier 1 in the generator
	writeJSON(w, http.StatusCreated, s.ctrl.AddSuperChat(tier))
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAuto(w http.ResponseWriter, r *http.Request) {
	switch mode := r.URL.Query().Get("mode"); mode {
	case "on":
		s.ctrl.StartAuto()
	case "off":
		s.ctrl.StopAuto()
	case "", "toggle":
		s.ctrl.ToggleAuto()
	default:
		http.Error(w, "mode must be on, off or toggle", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"auto": s.ctrl.IsAuto()})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.log.Error("failed to reload stylesheet", "err", err)
		http.Error(w, "failed to reload stylesheet", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Feed().Events())
}

type debugResponse struct {
	feed.DebugInfo
	CSSLoaded       bool     `json:"cssLoaded"`
	ConvertedLength int      `json:"convertedLength"`
	BaseFirst       bool     `json:"baseFirst"`
	Conflicts       []string `json:"conflicts"`
}

func (s *Server) handleDebug(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := debugResponse{
		DebugInfo:       s.ctrl.Debug(),
		CSSLoaded:       s.loaded,
		ConvertedLength: len(s.converted),
		BaseFirst:       s.opts.Converter.BaseFirst,
		Conflicts:       stylesheet.Conflicts(s.css),
	}
	s.mu.RUnlock()
	if resp.Conflicts == nil {
		resp.Conflicts = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDownload serves the raw stylesheet. ?download=1 makes browsers save it as a file.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+stylesheet.DefaultExportName+`"`)
	}
	w.Write([]byte(s.Stylesheet()))
}

// handleUpload applies a stylesheet sent as the request body or as the "file" field of a form.
// ?save=1 also persists it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStylesheetBytes)

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, _, ferr := r.FormFile("file")
		if ferr != nil {
			err = ferr
		} else {
			defer file.Close()
			data, err = io.ReadAll(file)
		}
	} else {
		// curl --data-binary labels bodies as form data; read them raw anyway
		data, err = io.ReadAll(r.Body)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "stylesheet too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read stylesheet", http.StatusBadRequest)
		return
	}

	text := string(data)
	if r.URL.Query().Get("save") != "" {
		if err := s.styles.Save(r.Context(), text); err != nil {
			s.log.Error("failed to save uploaded stylesheet", "err", err)
			http.Error(w, "failed to save stylesheet", http.StatusInternalServerError)
			return
		}
	}
	s.setStylesheet(text, true)

	conflicts := stylesheet.Conflicts(text)
	if conflicts == nil {
		conflicts = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bytes": len(data), "conflicts": conflicts})
}
