package preview

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
	"github.com/gregriff/ytlc/internal/stylesheet"
)

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func setupTestServer(t *testing.T, opts Options) (*Server, *feed.Controller, *stylesheet.Store) {
	t.Helper()
	gen := chat.NewGenerator(rand.New(rand.NewPCG(3, 4)))
	ctrl := feed.NewController(feed.New(), gen, log.New(io.Discard), feed.Options{Interval: 10 * time.Millisecond})
	t.Cleanup(ctrl.Close)
	styles := stylesheet.NewStore(&memKV{values: map[string]string{}})
	if opts.ReadyTimeout == 0 {
		opts.ReadyTimeout = 20 * time.Millisecond
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 100
	}
	return NewServer(ctrl, styles, log.New(io.Discard), opts), ctrl, styles
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleHealthz(t *testing.T) {
	server, _, _ := setupTestServer(t, Options{})
	w := do(t, server.Handler(), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}

func TestIndexRendersFeed(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{Controls: true})
	ctrl.MarkReady()
	e := ctrl.AddSuperChat(4)

	w := do(t, server.Handler(), http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<title>YTLCV2 Simulator (Browser Mode)</title>",
		`data-id="` + e.ID + `"`,
		"message-superchat",
		e.FormattedAmount(),
		"Tier 4",
		`data-action="/api/demo"`,
		`data-action="/api/quick-demo"`,
		`data-action="/api/mass"`,
		`data-action="/api/chat/owner"`,
		`data-action="/api/chat/viewer"`,
		`data-action="/api/superchat?tier=1"`,
		`data-action="/api/superchat?tier=7"`,
		"Tier 7 ($500-$999)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexWithoutControls(t *testing.T) {
	server, _, _ := setupTestServer(t, Options{})
	body := do(t, server.Handler(), http.MethodGet, "/", nil).Body.String()
	for _, unwanted := range []string{`class="controls"`, `data-action="/api/`, `id="status"`} {
		if strings.Contains(body, unwanted) {
			t.Errorf("controls should be hidden, found %q", unwanted)
		}
	}
	if !strings.Contains(body, `id="feed"`) {
		t.Error("feed should still render")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	server, _, _ := setupTestServer(t, Options{})
	if w := do(t, server.Handler(), http.MethodGet, "/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestConvertedStylesheet(t *testing.T) {
	server, _, _ := setupTestServer(t, Options{})
	w := do(t, server.Handler(), http.MethodGet, "/style.css", nil)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != stylesheet.Convert(stylesheet.DefaultTemplate) {
		t.Error("style.css should be the converted default template")
	}
}

func TestControlBeforeReady(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	w := do(t, server.Handler(), http.MethodPost, "/api/chat/random", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
	if ctrl.Feed().Len() != 0 {
		t.Error("no event should be added before ready")
	}
}

func TestChatEndpoints(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	ctrl.MarkReady()
	h := server.Handler()

	cases := []struct {
		target string
		status int
		kind   chat.Kind
	}{
		{"/api/chat/owner", http.StatusCreated, chat.KindOwner},
		{"/api/chat/moderator", http.StatusCreated, chat.KindMod},
		{"/api/chat/member", http.StatusCreated, chat.KindMember},
		{"/api/chat/viewer", http.StatusCreated, chat.KindViewer},
		{"/api/chat/sticker", http.StatusCreated, chat.KindSticker},
		{"/api/superchat?tier=3", http.StatusCreated, chat.KindSuperChat},
		{"/api/membership", http.StatusCreated, chat.KindMembership},
		{"/api/sticker", http.StatusCreated, chat.KindSticker},
		{"/api/chat/nobody", http.StatusBadRequest, ""},
		{"/api/superchat?tier=abc", http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tc.target, nil)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if tc.kind == "" {
				return
			}
			var e chat.Event
			if err := json.NewDecoder(w.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if e.Kind != tc.kind {
				t.Errorf("kind = %s, want %s", e.Kind, tc.kind)
			}
		})
	}

	if got := ctrl.Feed().Events()[len(ctrl.Feed().Events())-1]; got.Kind != chat.KindOwner {
		t.Errorf("oldest event = %s, want owner", got.Kind)
	}
}

func TestSuperChatTier(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	ctrl.MarkReady()

	w := do(t, server.Handler(), http.MethodPost, "/api/superchat?tier=7", nil)
	var e chat.Event
	json.NewDecoder(w.Body).Decode(&e)
	if e.Tier != 7 || e.Amount < 500*100 {
		t.Errorf("tier 7 super chat = tier %d amount %d", e.Tier, e.Amount)
	}

	w = do(t, server.Handler(), http.MethodPost, "/api/superchat?tier=99", nil)
	json.NewDecoder(w.Body).Decode(&e)
	if e.Tier != 1 {
		t.Errorf("out of range tier = %d, want fallback 1", e.Tier)
	}
}

func TestAutoAndClear(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	ctrl.MarkReady()
	h := server.Handler()

	auto := func(mode string) bool {
		t.Helper()
		w := do(t, h, http.MethodPost, "/api/auto?mode="+mode, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("auto %s status = %d", mode, w.Code)
		}
		var resp map[string]bool
		json.NewDecoder(w.Body).Decode(&resp)
		return resp["auto"]
	}
	if !auto("on") || !ctrl.IsAuto() {
		t.Fatal("auto should be on")
	}
	if !auto("on") {
		t.Error("starting twice should keep auto on")
	}
	if auto("toggle") {
		t.Error("toggle should turn auto off")
	}
	if auto("off") {
		t.Error("auto should stay off")
	}
	if w := do(t, h, http.MethodPost, "/api/auto?mode=sideways", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad mode status = %d", w.Code)
	}

	ctrl.AddRandom()
	if w := do(t, h, http.MethodPost, "/api/clear", nil); w.Code != http.StatusNoContent {
		t.Errorf("clear status = %d", w.Code)
	}
	if ctrl.State() != feed.StateEmpty {
		t.Errorf("state after clear = %s", ctrl.State())
	}
}

func TestBatchEndpoints(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	ctrl.MarkReady()
	h := server.Handler()

	for _, target := range []string{"/api/demo", "/api/quick-demo", "/api/mass"} {
		if w := do(t, h, http.MethodPost, target, nil); w.Code != http.StatusAccepted {
			t.Errorf("%s status = %d", target, w.Code)
		}
	}
	// the first step of each batch runs immediately
	if ctrl.Feed().Len() < 3 {
		t.Errorf("len = %d, want at least 3", ctrl.Feed().Len())
	}
}

func TestRateLimit(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{RateLimit: 0.001, RateBurst: 1})
	ctrl.MarkReady()
	h := server.Handler()

	if w := do(t, h, http.MethodPost, "/api/sticker", nil); w.Code != http.StatusCreated {
		t.Fatalf("first request status = %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/sticker", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
	// reads are not limited
	if w := do(t, h, http.MethodGet, "/api/events", nil); w.Code != http.StatusOK {
		t.Errorf("events status = %d", w.Code)
	}
}

func TestUploadAndDownload(t *testing.T) {
	server, _, styles := setupTestServer(t, Options{})
	h := server.Handler()
	css := "#message { color: hotpink; }\n"

	w := do(t, h, http.MethodPost, "/stylesheet", strings.NewReader(css))
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d", w.Code)
	}
	var resp struct {
		Bytes     int      `json:"bytes"`
		Conflicts []string `json:"conflicts"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Bytes != len(css) || len(resp.Conflicts) != 1 || resp.Conflicts[0] != ".message-text" {
		t.Errorf("upload response = %+v", resp)
	}
	if saved, _ := styles.HasSaved(context.Background()); saved {
		t.Error("upload without save should not persist")
	}

	got := do(t, h, http.MethodGet, "/style.css", nil).Body.String()
	if !strings.HasPrefix(got, ".message-text { color: hotpink; }") {
		t.Errorf("converted stylesheet starts %q", got[:min(len(got), 40)])
	}

	dl := do(t, h, http.MethodGet, "/stylesheet.css?download=1", nil)
	if dl.Body.String() != css {
		t.Errorf("download = %q", dl.Body.String())
	}
	if cd := dl.Header().Get("Content-Disposition"); !strings.Contains(cd, "youtube-chat-widget.css") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestUploadMultipartAndSave(t *testing.T) {
	server, _, styles := setupTestServer(t, Options{})
	css := ".my-style { color: teal; }"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "widget.css")
	fw.Write([]byte(css))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/stylesheet?save=1", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", w.Code, w.Body.String())
	}
	if got, _ := styles.Load(context.Background()); got != css {
		t.Errorf("saved stylesheet = %q", got)
	}
}

func TestUploadTooLarge(t *testing.T) {
	server, _, _ := setupTestServer(t, Options{})
	big := strings.Repeat("a", maxStylesheetBytes+1)
	if w := do(t, server.Handler(), http.MethodPost, "/stylesheet", strings.NewReader(big)); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}
}

func TestReloadReadsStore(t *testing.T) {
	server, ctrl, styles := setupTestServer(t, Options{})
	ctrl.MarkReady()
	css := "yt-live-chat-author-chip { display: none; }"
	styles.Save(context.Background(), css)

	if w := do(t, server.Handler(), http.MethodPost, "/api/reload-css", nil); w.Code != http.StatusNoContent {
		t.Fatalf("reload status = %d", w.Code)
	}
	if server.Stylesheet() != css {
		t.Errorf("stylesheet after reload = %q", server.Stylesheet())
	}
}

func TestDebug(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{Converter: stylesheet.Converter{BaseFirst: true}})
	ctrl.MarkReady()
	ctrl.AddKind(chat.KindMember)

	w := do(t, server.Handler(), http.MethodGet, "/api/debug", nil)
	var resp struct {
		Events          int            `json:"events"`
		State           string         `json:"state"`
		ByKind          map[string]int `json:"byKind"`
		CSSLoaded       bool           `json:"cssLoaded"`
		ConvertedLength int            `json:"convertedLength"`
		BaseFirst       bool           `json:"baseFirst"`
		Conflicts       []string       `json:"conflicts"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Events != 1 || resp.State != "populated" || resp.ByKind["member"] != 1 {
		t.Errorf("debug = %+v", resp)
	}
	if resp.CSSLoaded {
		t.Error("css should not report loaded before Reload")
	}
	if !resp.BaseFirst || resp.ConvertedLength == 0 || resp.Conflicts == nil {
		t.Errorf("debug stylesheet fields = %+v", resp)
	}
}

func TestStream(t *testing.T) {
	server, ctrl, _ := setupTestServer(t, Options{})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()
	// next returns the name and data of the next event
	next := func() (string, string) {
		t.Helper()
		var name string
		var data []string
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatal("stream closed")
				}
				switch {
				case strings.HasPrefix(line, "event: "):
					name = strings.TrimPrefix(line, "event: ")
				case strings.HasPrefix(line, "data: "):
					data = append(data, strings.TrimPrefix(line, "data: "))
				case line == "" && name != "":
					return name, strings.Join(data, "\n")
				}
			case <-timeout:
				t.Fatal("timed out waiting for event")
			}
		}
	}

	if name, _ := next(); name != "feed" {
		t.Fatalf("first event = %q, want feed", name)
	}

	e := ctrl.AddKind(chat.KindOwner)
	name, data := next()
	if name != "feed" || !strings.Contains(data, e.ID) {
		t.Errorf("event %q missing new message: %q", name, data)
	}

	server.setStylesheet(".x { color: red; }", true)
	if name, _ := next(); name != "style" {
		t.Errorf("event = %q, want style", name)
	}
}
