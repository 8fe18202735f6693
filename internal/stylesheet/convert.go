// Package stylesheet rewrites YouTube live-chat CSS for the simulator markup and persists the user's stylesheet.
package stylesheet

import (
	_ "embed"
	"regexp"
	"strings"
)

// BaseStylesMarker opens the block appended by Convert.
const BaseStylesMarker = "/* === SIMULATOR BASE STYLES === */"

//go:embed base.css
var baseStyles string

//go:embed default.css
var DefaultTemplate string

// BaseStyles returns the supplementary block Convert adds to every stylesheet.
func BaseStyles() string {
	return baseStyles
}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules map YouTube's live-chat DOM selectors onto the simulator's class names. They are applied in order;
// "#contents" must run before "#content". No replacement is matched by a later pattern, so converting
// converted text leaves the selectors alone. Element names absorb one leading "." so that ".renderer"
// does not become "..class".
var rules = []rule{
	{regexp.MustCompile(`\.?yt-live-chat-text-message-renderer`), ".yt-live-chat-message"},
	{regexp.MustCompile(`\.?yt-live-chat-paid-message-renderer`), ".message-superchat"},
	{regexp.MustCompile(`\.?yt-live-chat-paid-sticker-renderer`), ".message-sticker"},
	{regexp.MustCompile(`\.?yt-live-chat-membership-item-renderer`), ".message-membership"},
	{regexp.MustCompile(`\.?yt-live-chat-renderer`), ".chat-simulator-container"},
	{regexp.MustCompile(`\.?yt-live-chat-item-list-renderer`), ".messages-container"},
	{regexp.MustCompile(`#contents`), ".messages-container"},
	{regexp.MustCompile(`#items`), ".messages-container"},

	{regexp.MustCompile(`\[author-type="owner"\]`), ".message-owner"},
	{regexp.MustCompile(`\[author-type="moderator"\]`), ".message-mod"},
	{regexp.MustCompile(`\[author-type="member"\]`), ".message-member"},
	{regexp.MustCompile(`\[author-is-owner\]`), ".message-owner"},

	{regexp.MustCompile(`#content`), ".message-content"},
	{regexp.MustCompile(`#author-name`), ".author-name"},
	{regexp.MustCompile(`#message`), ".message-text"},
	{regexp.MustCompile(`#author-photo`), ".author-photo"},
}

// Converter rewrites upstream stylesheets. The zero value appends the base block, so later
// base rules win the cascade over user rules with equal specificity.
type Converter struct {
	// BaseFirst places the base block before the user's rules so that the user's rules win.
	BaseFirst bool
}

// Convert rewrites src with the default Converter.
func Convert(src string) string {
	return Converter{}.Convert(src)
}

// Rewrite applies the selector rules only, without adding the base block.
func Rewrite(src string) string {
	out := src
	for _, r := range rules {
		out = r.pattern.ReplaceAllLiteralString(out, r.replacement)
	}
	return out
}

// Convert rewrites src and adds the base block. Malformed input yields malformed output; nothing is validated.
func (c Converter) Convert(src string) string {
	rewritten := Rewrite(src)

	var b strings.Builder
	b.Grow(len(rewritten) + len(baseStyles) + 2)
	if c.BaseFirst {
		b.WriteString(baseStyles)
		b.WriteString("\n")
		b.WriteString(rewritten)
		return b.String()
	}
	b.WriteString(rewritten)
	b.WriteString("\n")
	b.WriteString(baseStyles)
	return b.String()
}
