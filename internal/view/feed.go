// Package view renders the simulated chat feed and the help and debug overlays for the terminal UI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/gregriff/ytlc/internal/chat"
	styles "github.com/gregriff/ytlc/internal/styles"
)

// FeedView turns feed snapshots into viewport content. Rendered bubbles are cached per event
// for a given width, so a new message only renders that message.
type FeedView struct {
	rendered     strings.Builder // whole feed at lastWidth for lastVersion
	bubbles      map[string]string
	lastWidth    int
	lastVersion  uint64
	renderedOnce bool
}

func NewFeedView() *FeedView {
	return &FeedView{bubbles: make(map[string]string)}
}

// Render returns the feed as terminal text, oldest message at the top like a live chat.
// events are newest first, as returned by Feed.Events. If neither version nor width has changed
// since the last call, the previous result is reused.
func (v *FeedView) Render(events []chat.Event, version uint64, vpWidth int) string {
	if v.renderedOnce && version == v.lastVersion && vpWidth == v.lastWidth {
		return v.rendered.String()
	}
	// viewport width has changed, every bubble must be wrapped again
	if vpWidth != v.lastWidth {
		clear(v.bubbles)
	}
	v.lastWidth, v.lastVersion, v.renderedOnce = vpWidth, version, true
	v.rendered.Reset()

	if len(events) == 0 {
		v.rendered.WriteString(styles.TUIStyles.StatusOff.Render("No messages yet. Press ? for keys."))
		clear(v.bubbles)
		return v.rendered.String()
	}

	bubbleWidth := int(float64(vpWidth) * styles.WIDTH_PROPORTION_BUBBLE)
	live := make(map[string]struct{}, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		live[e.ID] = struct{}{}
		bubble, ok := v.bubbles[e.ID]
		if !ok {
			bubble = renderBubble(e, bubbleWidth)
			v.bubbles[e.ID] = bubble
		}
		v.rendered.WriteString(lipgloss.NewStyle().PaddingLeft(styles.H_PADDING).Render(bubble))
		if i > 0 {
			v.rendered.WriteString("\n")
		}
	}
	// drop bubbles for events that fell off the feed
	for id := range v.bubbles {
		if _, ok := live[id]; !ok {
			delete(v.bubbles, id)
		}
	}
	return v.rendered.String()
}

// Cached reports how many bubbles are held in the cache.
func (v *FeedView) Cached() int {
	return len(v.bubbles)
}
