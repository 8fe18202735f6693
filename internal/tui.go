package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/log"
	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
	"github.com/gregriff/ytlc/internal/host"
	"github.com/gregriff/ytlc/internal/math"
	styles "github.com/gregriff/ytlc/internal/styles"
	"github.com/gregriff/ytlc/internal/stylesheet"
	"github.com/gregriff/ytlc/internal/view"
	zone "github.com/lrstanley/bubblezone/v2"
)

// Reloader is notified after the saved stylesheet changes, e.g. a preview server sharing the controller.
type Reloader interface {
	Reload(ctx context.Context) error
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayDebug
)

// Options configures a TUIModel.
type Options struct {
	Converter    stylesheet.Converter
	GlamourStyle string
	ExportPath   string   // file or directory used by export and import
	Preview      Reloader // optional
}

type TUIModel struct {
	ctx       context.Context
	ctrl      *feed.Controller
	styles    *stylesheet.Store
	log       *log.Logger
	opts      Options
	feedCh    <-chan struct{}
	unsubFeed func()

	// UI state
	ready      bool
	viewport   viewport.Model
	editor     textarea.Model
	spinner    spinner.Model
	windowSize tea.WindowSizeMsg

	feedView *view.FeedView
	markdown *view.MarkdownRenderer

	// stylesheet state
	savedCSS  string // text last loaded from or written to the store
	hasSaved  bool
	conflicts []string
	copied    bool

	editing     bool
	overlay     overlayKind
	confirmQuit bool
	tier        int // tier used by the next super chat
	status      string

	contentBuilder strings.Builder
}

// Bubbletea messages
type (
	feedChanged struct{}
	feedClosed  struct{}
	copyExpired struct{}

	stylesheetLoaded struct {
		text  string
		saved bool
		err   error
	}
	stylesheetSaved struct {
		text string
		err  error
	}
	statusMsg string
)

// NewTUI creates the simulator UI over ctrl. The controller is shared, not owned: the caller closes it.
func NewTUI(ctx context.Context, ctrl *feed.Controller, store *stylesheet.Store, logger *log.Logger, opts Options) (*TUIModel, error) {
	if logger == nil {
		logger = log.Default()
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	if opts.ExportPath == "" {
		opts.ExportPath = "."
	}
	md, err := view.NewMarkdownRenderer(opts.GlamourStyle)
	if err != nil {
		return nil, err
	}

	// css editor
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "/* custom chat CSS */"
	ta.Styles.Focused.Placeholder = styles.TUIStyles.StatusOff
	ta.Styles.Focused.CursorLine = styles.TUIStyles.TextAreaCursor
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.MaxHeight = 0 // stylesheets run well past the default line limit
	ta.SetValue(stylesheet.DefaultTemplate)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = styles.TUIStyles.Spinner

	feedCh, unsub := ctrl.Feed().Subscribe()
	return &TUIModel{
		ctx:       ctx,
		ctrl:      ctrl,
		styles:    store,
		log:       logger.WithPrefix("tui"),
		opts:      opts,
		feedCh:    feedCh,
		unsubFeed: unsub,
		editor:    ta,
		spinner:   s,
		feedView:  view.NewFeedView(),
		markdown:  md,
		savedCSS:  ta.Value(),
		tier:      chat.MinTier,
	}, nil
}

// Start runs the program until the user quits.
func (m *TUIModel) Start() error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)
	defer m.unsubFeed()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// Init performs initial IO.
func (m *TUIModel) Init() tea.Cmd {
	m.ctrl.Start(m.ctx)
	return tea.Batch(
		tea.SetWindowTitle(host.TerminalTitle),
		m.loadStylesheet,
		m.waitForFeed,
	)
}

func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		return m.handleClick(msg)

	case tea.MouseWheelMsg:
		var vpCmd tea.Cmd
		if m.editing && zone.Get("cssEditor").InBounds(msg) {
			key := tea.KeyPressMsg{Code: tea.KeyDown}
			if msg.Mouse().Button == tea.MouseWheelUp {
				key = tea.KeyPressMsg{Code: tea.KeyUp}
			}
			m.editor, vpCmd = m.editor.Update(key)
			return m, vpCmd
		}
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.BlurMsg:
		if m.editor.Focused() {
			m.editor.Blur()
		}
		return m, nil

	case tea.FocusMsg:
		if m.editing {
			return m, m.editor.Focus()
		}
		return m, nil

	case feedChanged:
		m.refreshContent()
		return m, m.waitForFeed

	case feedClosed:
		return m, nil

	case stylesheetLoaded:
		if msg.err != nil {
			m.log.Error("failed to load stylesheet", "err", msg.err)
			m.status = "Load failed, using default template"
		}
		m.applyLoaded(msg.text, msg.saved)
		return m, nil

	case stylesheetSaved:
		if msg.err != nil {
			m.log.Error("failed to save stylesheet", "err", msg.err)
			m.status = "Save failed"
			return m, nil
		}
		m.savedCSS, m.hasSaved = msg.text, true
		m.setConflicts(msg.text)
		m.status = "Stylesheet saved"
		return m, m.reloadPreview

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case copyExpired:
		m.copied = false
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.IsAuto() {
			return m, nil
		}
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		return m, spCmd

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	}

	if m.editing && m.editor.Focused() {
		var taCmd tea.Cmd
		m.editor, taCmd = m.editor.Update(msg)
		return m, taCmd
	}
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// waitForFeed notifies the Update function after the feed changes.
func (m *TUIModel) waitForFeed() tea.Msg {
	if _, ok := <-m.feedCh; ok {
		return feedChanged{}
	}
	return feedClosed{}
}

// refreshContent re-renders whatever the viewport is showing, following new messages if the view was at the bottom.
func (m *TUIModel) refreshContent() {
	if !m.ready {
		return
	}
	switch m.overlay {
	case overlayHelp:
		return
	case overlayDebug:
		m.viewport.SetContent(m.renderOverlay())
		return
	}
	atBottom := m.viewport.AtBottom()
	f := m.ctrl.Feed()
	m.viewport.SetContent(m.feedView.Render(f.Events(), f.Version(), m.viewport.Width()))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *TUIModel) renderOverlay() string {
	width := max(20, m.viewport.Width()-4)
	switch m.overlay {
	case overlayHelp:
		return m.markdown.Render(view.Help(), width)
	case overlayDebug:
		info := view.StyleInfo{
			Saved:           m.hasSaved,
			Dirty:           m.dirty(),
			BaseFirst:       m.opts.Converter.BaseFirst,
			ConvertedLength: len(m.opts.Converter.Convert(m.editor.Value())),
			Conflicts:       m.conflicts,
			CachedBubbles:   m.feedView.Cached(),
		}
		return m.markdown.Render(view.Debug(m.ctrl.Debug(), info), width)
	}
	return ""
}

func (m *TUIModel) toggleOverlay(kind overlayKind) {
	if m.overlay == kind {
		m.overlay = overlayNone
		m.refreshContent()
		m.viewport.GotoBottom()
		return
	}
	m.overlay = kind
	m.viewport.SetContent(m.renderOverlay())
	m.viewport.GotoTop()
}

// dirty reports whether the editor holds edits that have not been saved.
func (m *TUIModel) dirty() bool {
	return m.editor.Value() != m.savedCSS
}

func (m *TUIModel) applyLoaded(text string, saved bool) {
	m.editor.SetValue(text)
	// compare against what the editor holds, it normalizes tabs and line endings
	m.savedCSS, m.hasSaved = m.editor.Value(), saved
	m.setConflicts(text)
}

func (m *TUIModel) setConflicts(text string) {
	m.conflicts = stylesheet.Conflicts(text)
	if len(m.conflicts) > 0 && !m.opts.Converter.BaseFirst {
		m.log.Warn("base styles redefine user selectors", "selectors", m.conflicts)
	}
}

func (m *TUIModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.windowSize = msg
	viewportWidth, viewportHeight, editorWidth := m.getResizeParams(msg.Width, msg.Height)

	if !m.ready {
		m.viewport = viewport.New(viewport.WithWidth(viewportWidth), viewport.WithHeight(viewportHeight))
		m.viewport.MouseWheelDelta = 2
		m.ready = true
	} else {
		m.viewport.SetWidth(viewportWidth)
		m.viewport.SetHeight(viewportHeight)
	}
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(max(1, viewportHeight-1)) // editor title line

	if m.overlay != overlayNone {
		m.viewport.SetContent(m.renderOverlay())
	} else {
		m.refreshContent()
		m.viewport.GotoBottom()
	}
	return m, nil
}

// getResizeParams returns the sizes of the feed viewport and the css editor for a window.
func (m *TUIModel) getResizeParams(windowWidth, windowHeight int) (viewportWidth, viewportHeight, editorWidth int) {
	headerHeight := lipgloss.Height(m.headerView(windowWidth))
	viewportHeight = max(1, windowHeight-headerHeight-styles.PANEL_HEIGHT-styles.STATUS_BAR_HEIGHT)

	viewportWidth = windowWidth
	editorWidth = math.Clamp(int(float64(windowWidth)*styles.WIDTH_PROPORTION_EDITOR), styles.EDITOR_MIN_WIDTH, max(styles.EDITOR_MIN_WIDTH, windowWidth-styles.EDITOR_MIN_WIDTH))
	if m.editing {
		viewportWidth = max(1, windowWidth-editorWidth)
	}
	return viewportWidth, viewportHeight, editorWidth
}

// redraw initiates the Window resize handler. Use it after changing the layout.
func (m *TUIModel) redraw() tea.Msg {
	return m.windowSize
}

func (m *TUIModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	width := m.windowSize.Width

	main := zone.Mark("feedViewport", m.viewport.View())
	if m.editing {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, zone.Mark("cssEditor", m.editorView()))
	}

	bottom := m.panelView(width)
	if m.confirmQuit {
		bottom = styles.TUIStyles.Confirm.Render(host.CloseConfirmation + "  (y/n)")
	}

	m.contentBuilder.Reset()
	m.contentBuilder.WriteString(
		zone.Scan(
			fmt.Sprintf("%s\n%s\n%s\n%s",
				m.headerView(width),
				main,
				bottom,
				m.statusView(width),
			),
		))
	return m.contentBuilder.String()
}

func (m *TUIModel) editorView() string {
	title := styles.TUIStyles.EditorTitle.Render("CSS Editor")
	if m.dirty() {
		title += styles.TUIStyles.EditorDirty.Render(" • unsaved")
	}
	return title + "\n" + m.editor.View()
}

// headerView returns the title bar. While auto mode runs the spinner replaces the app name.
func (m *TUIModel) headerView(width int) string {
	leftText := "ytlc"
	if m.ctrl.IsAuto() {
		leftText = m.spinner.View() + " auto"
	}
	rightText := host.TerminalTitle
	titleTextWidth := lipgloss.Width(leftText) +
		lipgloss.Width(rightText) +
		styles.H_PADDING*2 + // the left and right padding defined in TUIStyles.TitleBar
		2 // the two border chars

	width = max(0, width)
	style := styles.TUIStyles.TitleBar.Width(width)
	spacing := strings.Repeat(" ", max(1, width-titleTextWidth))
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Center, leftText, spacing, rightText))
}

// statusView is the one-line summary under the control panel.
func (m *TUIModel) statusView(width int) string {
	ts := styles.TUIStyles
	auto := ts.StatusOff.Render("OFF")
	if m.ctrl.IsAuto() {
		auto = ts.StatusOn.Render("ON")
	}
	css := "Default"
	if m.hasSaved {
		css = "Active"
	}
	parts := []string{
		"Auto: " + auto,
		fmt.Sprintf("Messages: %d/%d", m.ctrl.Feed().Len(), feed.Capacity),
		"CSS: " + css,
	}
	if len(m.conflicts) > 0 {
		parts = append(parts, fmt.Sprintf("Overridden: %d", len(m.conflicts)))
	}
	if m.copied {
		parts = append(parts, ts.StatusOn.Render("Copied!"))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return ts.StatusBar.Width(width).MaxHeight(styles.STATUS_BAR_HEIGHT).Render(strings.Join(parts, "  │  "))
}
