package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/homepage/internal/config"
	"github.com/five82/homepage/internal/prefs"
	"github.com/five82/homepage/internal/state"
)

// Profile is the page owner shown in the banner and the link buttons.
type Profile struct {
	Name    string
	Tagline string
	Links   []config.LinkButton
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Prefs   *prefs.Store
	Theme   *prefs.ThemeController
	Profile Profile
	LogPath string
	Logger  *zap.Logger
	Tick    time.Duration

	// Appearance is the state resolved at startup.
	Appearance prefs.Appearance

	// Opener and Copier default to the platform browser and clipboard.
	Opener func(url string) error
	Copier func(text string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	prefs    *prefs.Store
	themeCtl *prefs.ThemeController
	profile  Profile
	buttons  []config.LinkButton
	logPath  string
	logger   *zap.Logger
	tick     time.Duration
	opener   func(string) error
	copier   func(string) error
	keys     keyMap

	// UI state
	appearance prefs.Appearance
	theme      Theme
	width      int
	height     int
	ready      bool
	focus      int // 0 = avatar, i = button i-1
	status     statusLine

	// Data state
	snapshot state.Snapshot

	// Widgets
	level    levelState
	levelBar progress.Model
	spinner  spinner.Model
	help     help.Model

	// Animation
	frame   int
	animGen int

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opener := opts.Opener
	if opener == nil {
		opener = openURL
	}
	copier := opts.Copier
	if copier == nil {
		copier = defaultCopier
	}
	buttons := opts.Profile.Links
	if len(buttons) > 9 {
		buttons = buttons[:9]
	}

	m := Model{
		ctx:      ctx,
		store:    opts.Store,
		prefs:    opts.Prefs,
		themeCtl: opts.Theme,
		profile:  opts.Profile,
		buttons:  buttons,
		logPath:  opts.LogPath,
		logger:   logger,
		tick:     tick,
		opener:   opener,
		copier:   copier,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.applyAppearance(opts.Appearance)

	if m.prefs != nil {
		m.level.display = m.prefs.Progress()
		if m.level.display.Clicks > 0 {
			m.level.visible = true
			m.level.hideGen = 1
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.level.visible {
		cmds = append(cmds, levelHideCmd(m.level.hideGen))
	}
	if m.appearance.Motion {
		cmds = append(cmds, m.spinner.Tick, animCmd(m.animGen))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case appearanceMsg:
		cmd := m.applyAppearance(prefs.Appearance(msg))
		return m, cmd

	case levelHideMsg:
		m.level.hide(msg)
		return m, nil

	case levelResetMsg:
		if m.prefs != nil {
			m.level.reset(msg, m.prefs.Progress())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.appearance.Motion || !m.snapshot.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case animMsg:
		if msg.gen != m.animGen || !m.appearance.Motion {
			return m, nil
		}
		m.frame++
		return m, animCmd(m.animGen)

	case statusClearMsg:
		if msg.gen == m.status.gen {
			m.status.text = ""
		}
		return m, nil

	case linkActionMsg:
		return m.handleLinkAction(msg)

	case diagnosticsMsg:
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		if m.themeCtl == nil {
			return m.setStatus("Settings are unavailable", statusWarn)
		}
		m.modal = newSettingsModal(m.themeCtl)
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.modal = newDiagnosticsModal(m.logPath, m.width, m.height)
		if m.logPath == "" {
			return m, nil
		}
		return m, loadDiagnosticsCmd(m.logPath)

	case key.Matches(msg, m.keys.Click):
		return m.clickAvatar()

	case key.Matches(msg, m.keys.Activate):
		if m.focus == 0 {
			return m.clickAvatar()
		}
		return m.activateLink(m.focus - 1)

	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % (len(m.buttons) + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		n := len(m.buttons) + 1
		m.focus = (m.focus - 1 + n) % n
		return m, nil

	case key.Matches(msg, m.keys.OpenLink):
		idx := int(msg.String()[0] - '1')
		return m.activateLink(idx)

	case key.Matches(msg, m.keys.Copy):
		return m.copyLink()

	case key.Matches(msg, m.keys.Escape):
		m.focus = 0
		return m, nil
	}

	return m, nil
}

// clickAvatar records one interaction and refreshes the level widget.
func (m Model) clickAvatar() (tea.Model, tea.Cmd) {
	m.focus = 0
	if m.prefs == nil {
		return m, nil
	}
	in := m.prefs.RecordInteraction()
	m.logger.Debug("avatar clicked",
		zap.Int("level", in.Progress.Level),
		zap.Int("clicks", in.Progress.Clicks),
		zap.Bool("level_up", in.LeveledUp))
	cmd := m.level.record(in)
	if in.LeveledUp {
		next, status := m.setStatus(fmt.Sprintf("Level up! Welcome to level %d", in.Progress.Level), statusOK)
		return next, tea.Batch(cmd, status)
	}
	return m, cmd
}

// applyAppearance switches palette and effects, and starts or stops the
// animations when motion changes.
func (m *Model) applyAppearance(a prefs.Appearance) tea.Cmd {
	motionWasOn := m.appearance.Motion
	m.appearance = a
	m.theme = ForAppearance(a)
	m.levelBar = newLevelBar(m.theme)
	m.spinner.Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Accent)).
		Background(lipgloss.Color(m.theme.Surface))

	helpStyles := help.New().Styles
	helpStyles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Background(lipgloss.Color(m.theme.Surface))
	helpStyles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Background(lipgloss.Color(m.theme.Surface))
	helpStyles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Background(lipgloss.Color(m.theme.Surface))
	helpStyles.Ellipsis = helpStyles.ShortSeparator
	m.help.Styles = helpStyles

	if a.Motion == motionWasOn {
		return nil
	}
	// Bumping the generation retires any animation chain already in flight.
	m.animGen++
	if !a.Motion {
		return nil
	}
	return tea.Batch(m.spinner.Tick, animCmd(m.animGen))
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	cmds = append(cmds, tickCmd(m.tick))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full page.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	bodyHeight := max(m.height-4, 0)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderBody(),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	b.WriteString(m.theme.Styles().Background.Render(body))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderBody stacks the avatar, level widget and link buttons.
func (m Model) renderBody() string {
	parts := []string{m.renderAvatar()}
	if lvl := m.renderLevel(); lvl != "" {
		parts = append(parts, lvl)
	}
	parts = append(parts, "", m.renderLinks())
	if u := m.focusedURL(); u != "" {
		parts = append(parts, u)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width-4, 10)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type animMsg struct{ gen int }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func animCmd(gen int) tea.Cmd {
	return tea.Tick(AnimationInterval, func(time.Time) tea.Msg {
		return animMsg{gen: gen}
	})
}

// Run starts the Bubble Tea program. System theme changes reach the model
// through Program.Send.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Theme != nil {
		opts.Theme.OnChange(func(a prefs.Appearance) {
			p.Send(appearanceMsg(a))
		})
		defer opts.Theme.OnChange(nil)
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
