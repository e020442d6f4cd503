package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opsview/internal/listing"
	"github.com/five82/opsview/internal/locale"
	"github.com/five82/opsview/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *listing.Controller
	Locale     *locale.Locale
	APIURL     string
	ThemeName  string
	PrefsPath  string
	Search     string
}

// Result is what the UI leaves behind for the caller to persist.
type Result struct {
	Theme      string
	LastSearch string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *listing.Controller
	loc       *locale.Locale
	apiURL    string
	prefsPath string
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	sub         *listing.Subscription
	view        listing.ViewState
	lastUpdated time.Time
	activateErr error

	// List state
	selectedRow int

	// Search state
	searchInput   textinput.Model
	searching     bool
	pendingSearch string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	loc := opts.Locale
	if loc == nil {
		loc, _ = locale.New("pt-BR", "BRL", "R$", nil)
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search descriptions..."
	ti.CharLimit = 100
	initial := strings.TrimSpace(opts.Search)
	ti.SetValue(initial)

	return Model{
		ctx:           ctx,
		ctrl:          opts.Controller,
		loc:           loc,
		apiURL:        opts.APIURL,
		prefsPath:     prefsPath,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(themeName),
		searchInput:   ti,
		pendingSearch: initial,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return activateCmd(m.ctx, m.ctrl)
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
		return m, nil

	case activatedMsg:
		if msg.err != nil {
			m.activateErr = msg.err
			return m, nil
		}
		m.activateErr = nil
		m.sub = msg.sub
		m.view = m.ctrl.Current()
		m.selectedRow = 0
		if m.pendingSearch != "" {
			m.applySearch(m.pendingSearch)
			m.pendingSearch = ""
		}
		return m, waitForStateCmd(msg.sub)

	case stateMsg:
		if msg.sub != m.sub {
			// Superseded activation.
			return m, nil
		}
		m.view = msg.state
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, waitForStateCmd(m.sub)

	case streamClosedMsg:
		if msg.sub == m.sub {
			m.sub = nil
			if m.ctrl != nil {
				m.view = m.ctrl.Current()
			}
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
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m, activateCmd(m.ctx, m.ctrl)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applySearch("")
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

// handleSearchInput routes keys to the search field. Every edit is pushed to
// the controller so the list narrows while typing.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()

	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearch("")
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.applySearch(after)
	}
	return m, cmd
}

// handleListKey moves the selection.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.view.Rows)
	if count == 0 {
		return m, nil
	}
	page := max(m.listHeight(), 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = min(m.selectedRow+page, count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-page, 0)
	}
	return m, nil
}

// applySearch forwards term to the controller and refreshes the view from
// its current state. Terms typed before activation are held until then.
func (m *Model) applySearch(term string) {
	if m.ctrl == nil {
		return
	}
	err := m.ctrl.SetSearchTerm(term)
	switch {
	case errors.Is(err, listing.ErrNotActivated):
		m.pendingSearch = term
		return
	case err != nil:
		return
	}
	m.view = m.ctrl.Current()
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.selectedRow >= len(m.view.Rows) {
		m.selectedRow = len(m.view.Rows) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.ctrl != nil {
		m.ctrl.Dispose()
	}
	m.savePrefs()
	return m, tea.Quit
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, m.result().toPrefs())
}

func (m Model) result() Result {
	return Result{
		Theme:      m.theme.Name,
		LastSearch: strings.TrimSpace(m.searchInput.Value()),
	}
}

func (r Result) toPrefs() prefs.Prefs {
	return prefs.Prefs{Theme: r.Theme, LastSearch: r.LastSearch}
}

// renderMain renders header, command bar and list.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	return b.String()
}

// Messages

type activatedMsg struct {
	sub *listing.Subscription
	err error
}

type stateMsg struct {
	sub   *listing.Subscription
	state listing.ViewState
}

type streamClosedMsg struct {
	sub *listing.Subscription
}

// Commands

func activateCmd(ctx context.Context, ctrl *listing.Controller) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		sub, err := ctrl.Activate(ctx)
		return activatedMsg{sub: sub, err: err}
	}
}

// waitForStateCmd blocks until the subscription delivers the next state.
func waitForStateCmd(sub *listing.Subscription) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.States()
		if !ok {
			return streamClosedMsg{sub: sub}
		}
		return stateMsg{sub: sub, state: v}
	}
}

// Run starts the Bubble Tea program and returns the final theme and search
// term. The controller is disposed when the program exits.
func Run(opts Options) (Result, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if opts.Controller != nil {
		opts.Controller.Dispose()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		// Shutdown signal, not a failure.
		err = nil
	}
	if fm, ok := final.(Model); ok {
		return fm.result(), err
	}
	return m.result(), err
}
