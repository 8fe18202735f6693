package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// notifier fans a "something changed" signal out to stream subscribers.
type notifier struct {
	mu     sync.Mutex
	subs   map[chan struct{}]struct{}
	closed bool
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[chan struct{}]struct{})}
}

func (n *notifier) subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.closed {
		close(ch)
	} else {
		n.subs[ch] = struct{}{}
	}
	n.mu.Unlock()
	return ch, func() {
		n.mu.Lock()
		if _, ok := n.subs[ch]; ok {
			delete(n.subs, ch)
			close(ch)
		}
		n.mu.Unlock()
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *notifier) closeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for ch := range n.subs {
		delete(n.subs, ch)
		close(ch)
	}
}

// writeEvent writes one server-sent event. Every line of data gets its own data: field.
func writeEvent(w *bufio.Writer, name, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", name); err != nil {
		return err
	}
	for line := range strings.SplitSeq(strings.TrimRight(data, "\n"), "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	return w.Flush()
}

func (s *Server) renderEvents() (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "events", s.ctrl.Feed().Events()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// handleStream pushes the rendered feed after every change and a style event after every stylesheet change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	feedCh, cancelFeed := s.ctrl.Feed().Subscribe()
	defer cancelFeed()
	styleCh, cancelStyle := s.styleSubs.subscribe()
	defer cancelStyle()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	bw := bufio.NewWriter(w)
	sendFeed := func() bool {
		html, err := s.renderEvents()
		if err != nil {
			s.log.Error("failed to render events", "err", err)
			return false
		}
		if err := writeEvent(bw, "feed", html); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !sendFeed() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-feedCh:
			if !ok || !sendFeed() {
				return
			}
		case _, ok := <-styleCh:
			if !ok {
				return
			}
			if err := writeEvent(bw, "style", "changed"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
