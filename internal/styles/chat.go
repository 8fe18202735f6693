// Package styles contains lipgloss style constants for the text throughout the application, as well as spacing and sizing constants for the text and UI.
package styles

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

// ChatStylesStruct defines styles for the chat bubbles in the feed viewport.
type ChatStylesStruct struct {
	Author,
	Badge,
	Message,
	Timestamp,
	Avatar,
	PaidHeader,
	Bubble lipgloss.Style
}

var ChatStyles = ChatStylesStruct{
	Author: lipgloss.NewStyle().Bold(true),

	Badge: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Bold(true).
		Padding(0, 1),

	Message: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EEEEEE")),

	Timestamp: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Faint(true),

	Avatar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Bold(true).
		Padding(0, 1),

	PaidHeader: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Bold(true).
		Padding(0, 1),

	Bubble: lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(BUBBLE_V_PADDING, H_PADDING),
}

// RoleColor parses an event colour, falling back to ColorSecondary for an empty value.
func RoleColor(hex string) color.Color {
	if hex == "" {
		return ColorSecondary
	}
	return lipgloss.Color(hex)
}
