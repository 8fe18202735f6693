package internal

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/gregriff/ytlc/internal/chat"
	styles "github.com/gregriff/ytlc/internal/styles"
	"github.com/gregriff/ytlc/internal/stylesheet"
	zone "github.com/lrstanley/bubblezone/v2"
)

// action is something the user can trigger from a key or a control panel button.
type action func(m *TUIModel) (tea.Model, tea.Cmd)

type button struct {
	id    string
	label func(m *TUIModel) string
	do    action
}

func fixed(label string) func(*TUIModel) string {
	return func(*TUIModel) string { return label }
}

// panelButtons are shown left to right in the control panel. Buttons that don't fit the window are dropped.
var panelButtons = []button{
	{"btnTestAll", fixed("Test All"), (*TUIModel).testAll},
	{"btnRandom", fixed("Random"), (*TUIModel).randomChat},
	{"btnSuperChat", func(m *TUIModel) string { return fmt.Sprintf("Super T%d", m.tier) }, (*TUIModel).superChat},
	{"btnMembership", fixed("Member"), (*TUIModel).membership},
	{"btnSticker", fixed("Sticker"), (*TUIModel).sticker},
	{"btnAuto", func(m *TUIModel) string {
		if m.ctrl.IsAuto() {
			return "Auto ON"
		}
		return "Auto OFF"
	}, (*TUIModel).toggleAuto},
	{"btnMass", fixed("Mass"), (*TUIModel).massChat},
	{"btnClear", fixed("Clear"), (*TUIModel).clearChat},
	{"btnEditor", fixed("CSS"), (*TUIModel).toggleEditor},
	{"btnDebug", fixed("Debug"), (*TUIModel).toggleDebug},
}

var keyActions = map[string]action{
	"space":   (*TUIModel).randomChat,
	" ":       (*TUIModel).randomChat,
	"1":       chatAction(chat.KindOwner),
	"2":       chatAction(chat.KindMod),
	"3":       chatAction(chat.KindMember),
	"4":       chatAction(chat.KindViewer),
	"s":       (*TUIModel).superChat,
	"S":       (*TUIModel).nextTier,
	"shift+s": (*TUIModel).nextTier,
	"m":       (*TUIModel).membership,
	"t":       (*TUIModel).sticker,
	"a":       (*TUIModel).toggleAuto,
	"d":       (*TUIModel).testAll,
	"D":       (*TUIModel).quickDemo,
	"shift+d": (*TUIModel).quickDemo,
	"x":       (*TUIModel).massChat,
	"c":       (*TUIModel).clearChat,
	"e":       (*TUIModel).toggleEditor,
	"y":       (*TUIModel).copyStylesheet,
	"o":       (*TUIModel).exportStylesheet,
	"i":       (*TUIModel).importStylesheet,
	"r":       (*TUIModel).reloadStylesheet,
	"g":       (*TUIModel).toggleDebug,
	"?":       (*TUIModel).toggleHelp,
	"q":       (*TUIModel).quit,
}

func chatAction(kind chat.Kind) action {
	return func(m *TUIModel) (tea.Model, tea.Cmd) {
		m.ctrl.AddKind(kind)
		return m, nil
	}
}

func (m *TUIModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyString := msg.String()

	if m.confirmQuit {
		switch keyString {
		case "y", "Y", "enter":
			return m, tea.Quit
		}
		m.confirmQuit = false
		return m, nil
	}

	switch keyString {
	case "ctrl+c", "ctrl+d":
		return m.quit()
	}

	if m.editing && m.editor.Focused() {
		switch keyString {
		case "esc":
			m.editor.Blur()
			return m, nil
		case "ctrl+s":
			return m, m.saveStylesheet(m.editor.Value())
		case "ctrl+r":
			m.editor.SetValue(m.styles.Reset())
			m.status = "Editor reset to the default template"
			return m, nil
		case "ctrl+y":
			return m.copyStylesheet()
		}
		var taCmd tea.Cmd
		m.editor, taCmd = m.editor.Update(msg)
		return m, taCmd
	}

	if m.overlay != overlayNone && keyString == "esc" {
		m.toggleOverlay(m.overlay)
		return m, nil
	}
	if m.editing && (keyString == "enter" || keyString == "tab") {
		return m, m.editor.Focus()
	}

	if do, ok := keyActions[keyString]; ok {
		return do(m)
	}

	// remaining keys scroll the viewport
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

func (m *TUIModel) handleClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		return m, nil
	}
	for _, b := range panelButtons {
		if zone.Get(b.id).InBounds(msg) {
			return b.do(m)
		}
	}
	if m.editing {
		if zone.Get("cssEditor").InBounds(msg) && !m.editor.Focused() {
			return m, m.editor.Focus()
		}
		if zone.Get("feedViewport").InBounds(msg) && m.editor.Focused() {
			m.editor.Blur()
		}
	}
	return m, nil
}

// panelView renders the clickable control panel.
func (m *TUIModel) panelView(width int) string {
	rendered := make([]string, 0, len(panelButtons))
	used := 0
	for _, b := range panelButtons {
		style := styles.TUIStyles.Button
		if b.id == "btnAuto" && m.ctrl.IsAuto() || b.id == "btnEditor" && m.editing {
			style = styles.TUIStyles.ButtonActive
		}
		cell := style.Render(b.label(m))
		if used+lipgloss.Width(cell) > width {
			break
		}
		used += lipgloss.Width(cell)
		rendered = append(rendered, zone.Mark(b.id, cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *TUIModel) randomChat() (tea.Model, tea.Cmd) {
	m.ctrl.AddRandom()
	return m, nil
}

func (m *TUIModel) superChat() (tea.Model, tea.Cmd) {
	m.ctrl.AddSuperChat(m.tier)
	return m, nil
}

// nextTier cycles the tier used by the next super chat.
func (m *TUIModel) nextTier() (tea.Model, tea.Cmd) {
	m.tier = m.tier%chat.MaxTier + 1
	t := chat.TierFor(m.tier)
	m.status = fmt.Sprintf("Super chat tier %d ($%d-$%d)", t.Level, t.Min, t.Max)
	return m, nil
}

func (m *TUIModel) membership() (tea.Model, tea.Cmd) {
	m.ctrl.AddMembership()
	return m, nil
}

func (m *TUIModel) sticker() (tea.Model, tea.Cmd) {
	m.ctrl.AddSticker()
	return m, nil
}

func (m *TUIModel) toggleAuto() (tea.Model, tea.Cmd) {
	if m.ctrl.ToggleAuto() {
		return m, m.spinner.Tick
	}
	return m, nil
}

func (m *TUIModel) testAll() (tea.Model, tea.Cmd) {
	m.ctrl.TestAll()
	return m, nil
}

func (m *TUIModel) quickDemo() (tea.Model, tea.Cmd) {
	m.ctrl.Demo()
	return m, nil
}

func (m *TUIModel) massChat() (tea.Model, tea.Cmd) {
	m.ctrl.MassChat()
	return m, nil
}

func (m *TUIModel) clearChat() (tea.Model, tea.Cmd) {
	m.ctrl.Clear()
	return m, nil
}

func (m *TUIModel) toggleEditor() (tea.Model, tea.Cmd) {
	m.editing = !m.editing
	if m.editing {
		return m, tea.Batch(m.editor.Focus(), m.redraw)
	}
	m.editor.Blur()
	return m, m.redraw
}

func (m *TUIModel) toggleHelp() (tea.Model, tea.Cmd) {
	m.toggleOverlay(overlayHelp)
	return m, nil
}

func (m *TUIModel) toggleDebug() (tea.Model, tea.Cmd) {
	m.toggleOverlay(overlayDebug)
	return m, nil
}

// quit asks for confirmation first when the editor holds unsaved edits.
func (m *TUIModel) quit() (tea.Model, tea.Cmd) {
	if m.dirty() && !m.confirmQuit {
		m.confirmQuit = true
		return m, nil
	}
	return m, tea.Quit
}

func (m *TUIModel) copyStylesheet() (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(m.editor.Value()); err != nil {
		m.log.Warn("failed to copy stylesheet", "err", err)
		m.status = "Copy failed"
		return m, nil
	}
	m.copied = true
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return copyExpired{} })
}

func (m *TUIModel) exportStylesheet() (tea.Model, tea.Cmd) {
	text, dest := m.editor.Value(), m.opts.ExportPath
	return m, func() tea.Msg {
		path, err := stylesheet.Export(dest, text)
		if err != nil {
			m.log.Error("export failed", "err", err)
			return statusMsg("Export failed")
		}
		m.log.Info("stylesheet exported", "path", path)
		return statusMsg("Exported to " + path)
	}
}

// importStylesheet reads the export file into the editor. The import is not saved until ctrl+s.
func (m *TUIModel) importStylesheet() (tea.Model, tea.Cmd) {
	path := stylesheet.ExportPath(m.opts.ExportPath)
	text, err := stylesheet.Import(path)
	if err != nil {
		m.log.Error("import failed", "err", err)
		m.status = "Import failed"
		return m, nil
	}
	m.editor.SetValue(text)
	m.setConflicts(text)
	m.status = "Imported " + path + " (unsaved)"
	return m, nil
}

func (m *TUIModel) reloadStylesheet() (tea.Model, tea.Cmd) {
	m.status = "Stylesheet reloaded"
	return m, tea.Batch(m.loadStylesheet, m.reloadPreview)
}

// loadStylesheet reads the saved stylesheet, falling back to the default template.
func (m *TUIModel) loadStylesheet() tea.Msg {
	text, err := m.styles.Load(m.ctx)
	if err != nil {
		return stylesheetLoaded{text: text, err: err}
	}
	saved, err := m.styles.HasSaved(m.ctx)
	return stylesheetLoaded{text: text, saved: saved, err: err}
}

func (m *TUIModel) saveStylesheet(text string) tea.Cmd {
	return func() tea.Msg {
		return stylesheetSaved{text: text, err: m.styles.Save(m.ctx, text)}
	}
}

// reloadPreview tells a preview server sharing this session to pick up the saved stylesheet.
func (m *TUIModel) reloadPreview() tea.Msg {
	if m.opts.Preview == nil {
		return nil
	}
	if err := m.opts.Preview.Reload(m.ctx); err != nil {
		m.log.Error("failed to reload preview stylesheet", "err", err)
		return statusMsg("Preview reload failed")
	}
	return nil
}
