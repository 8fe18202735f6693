package styles

import "github.com/charmbracelet/lipgloss/v2"

// TUIStylesStruct defines style constants for the UI of the application.
type TUIStylesStruct struct {
	TitleBar,
	StatusBar,
	StatusOn,
	StatusOff,
	Button,
	ButtonActive,
	EditorTitle,
	EditorDirty,
	Spinner,
	Overlay,
	Confirm,
	TextAreaCursor lipgloss.Style
}

var (
	ColorPrimary   = lipgloss.Color("86")      // cream
	ColorSecondary = lipgloss.Color("#CCD4FF") // light blue
	ColorAccent    = lipgloss.Color("#FF0000") // youtube red
	ColorMuted     = lipgloss.Color("#666666")
)

var TUIStyles = TUIStylesStruct{
	TitleBar: lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Faint(true).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, H_PADDING),

	StatusBar: lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Padding(0, H_PADDING),

	StatusOn: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#29a13e")).
		Bold(true),

	StatusOff: lipgloss.NewStyle().
		Foreground(ColorMuted),

	Button: lipgloss.NewStyle().
		Foreground(ColorSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, H_PADDING),

	ButtonActive: lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, H_PADDING),

	EditorTitle: lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true),

	EditorDirty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCA28")),

	Spinner: lipgloss.NewStyle().
		Foreground(ColorPrimary),

	Overlay: lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, H_PADDING),

	Confirm: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCA28")).
		Bold(true).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 2),

	TextAreaCursor: lipgloss.NewStyle(),
}
