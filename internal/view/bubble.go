package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/gregriff/ytlc/internal/chat"
	styles "github.com/gregriff/ytlc/internal/styles"
	"github.com/muesli/reflow/wordwrap"
)

// renderBubble formats one event as a terminal chat bubble at most maxWidth cells wide.
// Paid events get a coloured header with the amount, like the super chat card on the page.
func renderBubble(e chat.Event, maxWidth int) string {
	roleColor := styles.RoleColor(e.Color)
	cs := styles.ChatStyles

	// border, padding and the avatar column
	textWidth := max(10, maxWidth-2-styles.H_PADDING*2-lipgloss.Width(avatar(e))-1)

	var b strings.Builder
	b.WriteString(cs.Author.Foreground(roleColor).Render(e.Author))
	if e.Badge != "" {
		b.WriteString(" ")
		b.WriteString(cs.Badge.Background(roleColor).Render(e.Badge))
	}
	b.WriteString(" ")
	b.WriteString(cs.Timestamp.Render(e.CreatedAt.Format("15:04")))

	if e.Paid() {
		header := e.FormattedAmount()
		if e.Tier > 0 {
			header = fmt.Sprintf("%s · Tier %d", header, e.Tier)
		}
		b.WriteString("\n")
		b.WriteString(cs.PaidHeader.Background(roleColor).Render(header))
	}
	if e.Message != "" {
		b.WriteString("\n")
		b.WriteString(cs.Message.Render(wordwrap.String(e.Message, textWidth)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, avatar(e), " ", b.String())
	return cs.Bubble.BorderForeground(roleColor).Render(body)
}

func avatar(e chat.Event) string {
	return styles.ChatStyles.Avatar.Background(styles.RoleColor(e.Color)).Render(e.Initial())
}
