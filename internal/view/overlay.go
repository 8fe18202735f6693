package view

import (
	"fmt"
	"strings"

	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
)

const helpMarkdown = `# Keys

| key | action |
|---|---|
| space | random chat |
| 1 2 3 4 | owner, moderator, member, viewer chat |
| s | super chat (S picks the next tier) |
| m | new membership |
| t | sticker |
| a | toggle auto mode |
| d | test all types |
| D | quick demo |
| x | mass chat |
| c | clear chat |
| e | open or close the CSS editor |
| ctrl+s | save the stylesheet (editor) |
| ctrl+r | reset the editor to the default template |
| y | copy the stylesheet |
| o / i | export / import the stylesheet file |
| r | reload the saved stylesheet |
| g | debug info |
| ? | this help |
| q | quit |
`

// Help returns the key reference as markdown.
func Help() string {
	return helpMarkdown
}

// StyleInfo describes the stylesheet side of the debug overlay.
type StyleInfo struct {
	Saved           bool
	Dirty           bool
	BaseFirst       bool
	ConvertedLength int
	Conflicts       []string
	// CachedBubbles is how many rendered messages the feed view holds.
	CachedBubbles int
}

// Debug returns the debug overlay as markdown.
func Debug(info feed.DebugInfo, style StyleInfo) string {
	var b strings.Builder
	b.WriteString("# Debug\n\n")
	fmt.Fprintf(&b, "* state: **%s**\n", info.State)
	fmt.Fprintf(&b, "* messages: %d\n", info.Events)
	fmt.Fprintf(&b, "* auto mode: %t\n", info.Auto)
	fmt.Fprintf(&b, "* pending batch steps: %d\n", info.Pending)
	if info.Newest != nil {
		fmt.Fprintf(&b, "* newest: %s `%s` from %s\n", info.Newest.Kind, info.Newest.ID, info.Newest.Author)
	}

	if len(info.ByKind) > 0 {
		b.WriteString("\n| kind | count |\n|---|---|\n")
		for _, k := range kindOrder(info.ByKind) {
			fmt.Fprintf(&b, "| %s | %d |\n", k, info.ByKind[k])
		}
	}

	b.WriteString("\n## Stylesheet\n\n")
	fmt.Fprintf(&b, "* saved: %t\n", style.Saved)
	fmt.Fprintf(&b, "* unsaved edits: %t\n", style.Dirty)
	fmt.Fprintf(&b, "* base styles first: %t\n", style.BaseFirst)
	fmt.Fprintf(&b, "* converted length: %d\n", style.ConvertedLength)
	fmt.Fprintf(&b, "* cached bubbles: %d\n", style.CachedBubbles)
	if len(style.Conflicts) > 0 {
		b.WriteString("* selectors overridden by base styles:\n")
		for _, sel := range style.Conflicts {
			fmt.Fprintf(&b, "  * `%s`\n", sel)
		}
	}
	return b.String()
}

// kindOrder lists the kinds present in counts in display order.
func kindOrder(counts map[string]int) []string {
	var out []string
	for _, k := range chat.Kinds {
		if _, ok := counts[string(k)]; ok {
			out = append(out, string(k))
		}
	}
	return out
}
