// Package chat contains the synthetic live-chat events shown by the simulator and the generator that produces them.
package chat

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies which kind of live-chat entry an Event renders as.
type Kind string

const (
	KindOwner      Kind = "owner"
	KindMod        Kind = "mod"
	KindMember     Kind = "member"
	KindViewer     Kind = "viewer"
	KindSuperChat  Kind = "superchat"
	KindMembership Kind = "membership"
	KindSticker    Kind = "sticker"
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindOwner, KindMod, KindMember, KindViewer, KindSuperChat, KindMembership, KindSticker}

// ChatKinds are the kinds that carry a plain text message from a role.
var ChatKinds = []Kind{KindOwner, KindMod, KindMember, KindViewer}

// ParseKind maps a user supplied name onto a Kind. "moderator" is accepted as an alias of "mod".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "moderator" {
		return KindMod, nil
	}
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chat kind %q", s)
}

// IsChat reports whether k is one of the four role kinds.
func (k Kind) IsChat() bool {
	switch k {
	case KindOwner, KindMod, KindMember, KindViewer:
		return true
	}
	return false
}

// Event is a single synthetic live-chat entry. Events are values and are never modified after creation.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Author    string    `json:"author"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Amount    int64     `json:"amount,omitempty"` // minor currency units (cents)
	Tier      int       `json:"tier,omitempty"`
	Color     string    `json:"color,omitempty"`
	Badge     string    `json:"badge,omitempty"`
}

// Paid reports whether the event carries a donation amount.
func (e Event) Paid() bool {
	return e.Amount > 0
}

// Initial returns the upper-cased first letter of the author, used as the avatar.
func (e Event) Initial() string {
	for _, r := range e.Author {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// FormattedAmount returns the amount as dollars, e.g. "$12.00". Unpaid events return "".
func (e Event) FormattedAmount() string {
	if !e.Paid() {
		return ""
	}
	return FormatAmount(e.Amount)
}

// FormatAmount renders minor currency units as a dollar string.
func FormatAmount(minor int64) string {
	return fmt.Sprintf("$%d.%02d", minor/100, minor%100)
}

// CSSClass is the simulator markup class for the event's author role.
func (e Event) CSSClass() string {
	switch e.Kind {
	case KindOwner:
		return "message-owner"
	case KindMod:
		return "message-mod"
	case KindMember:
		return "message-member"
	case KindSuperChat:
		return "message-superchat"
	case KindMembership:
		return "message-membership"
	case KindSticker:
		return "message-sticker"
	default:
		return "message-viewer"
	}
}
