package tui

import (
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/script"
	"github.com/f3rmion/parley/internal/world"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewPicker ViewType = iota
	ViewPlayer
)

// ScriptLoadedMsg is sent when a script chosen in the picker has been loaded.
type ScriptLoadedMsg struct {
	World *world.World
	Path  string
	Err   error
}

// AppModel switches between the script picker and the player.
type AppModel struct {
	settings *config.Settings

	width  int
	height int
	ready  bool

	currentView ViewType
	picker      PickerModel
	player      PlayerModel
	// Scripts opened from the picker return to it when they end.
	fromPicker bool
	err        error

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// NewApp returns an app that starts in the script picker at dir.
func NewApp(settings *config.Settings, dir string) AppModel {
	return AppModel{
		settings:    settings,
		currentView: ViewPicker,
		picker:      NewPickerModel(dir),
		fromPicker:  true,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

// NewAppWithWorld returns an app that plays w straight away and quits when
// it ends. Font files are resolved relative to fontDir.
func NewAppWithWorld(settings *config.Settings, w *world.World, fontDir string) AppModel {
	m := NewApp(settings, fontDir)
	m.player = NewPlayerModel(w, settings, fontDir)
	m.currentView = ViewPlayer
	m.fromPicker = false
	return m
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.currentView == ViewPlayer {
		return m.player.Init()
	}
	return nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.currentView = ViewPicker
			m.fromPicker = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.picker.SetSize(msg.Width, msg.Height)
		m.player.SetSize(msg.Width, msg.Height)
		return m, nil

	case ScriptSelectedMsg:
		return m, m.loadScript(msg.Path)

	case ScriptLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.player = NewPlayerModel(msg.World, m.settings, filepath.Dir(msg.Path))
		m.player.SetSize(m.width, m.height)
		m.currentView = ViewPlayer
		return m, m.player.Init()

	case FinishedMsg:
		if m.fromPicker {
			m.currentView = ViewPicker
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewPicker:
		m.picker, cmd = m.picker.Update(msg)
	case ViewPlayer:
		m.player, cmd = m.player.Update(msg)
	}
	return m, cmd
}

// loadScript loads a script asynchronously
func (m AppModel) loadScript(path string) tea.Cmd {
	def := m.settings.ScriptDefaults()
	return func() tea.Msg {
		s, err := script.Load(path)
		if err != nil {
			return ScriptLoadedMsg{Path: path, Err: err}
		}
		if err := world.Check(s); err != nil {
			slog.Warn("script uses unknown actions", "path", path, "err", err)
		}
		w, err := world.New(s, def)
		return ScriptLoadedMsg{World: w, Path: path, Err: err}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	if m.currentView == ViewPlayer {
		return m.player.View()
	}

	view := m.picker.View()
	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "", ErrorStyle.Render(m.err.Error()))
	}
	return view
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	full := m.help
	full.ShowAll = true

	helpText := TitleStyle.Render("parley") + "\n\n" +
		full.View(m.keys) + "\n\n" +
		HelpStyle.Render("Any other key is passed to the dialogues.") + "\n\n" +
		HelpStyle.Italic(true).Render("Press any key to close")

	boxStyle := BoxStyle.
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(helpText))
}
