package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/parley/internal/clipboard"
	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/world"
	"github.com/mattn/go-runewidth"
)

// bellFrames is how many frames the border flashes after a bell.
const bellFrames = 6

// maxDelta caps the time a single frame may advance typewriters, so a
// suspended terminal doesn't reveal everything at once.
const maxDelta = 0.25

// frameMsg drives the player loop. Ticks carry the id of the player that
// scheduled them so a replaced player's ticks are dropped.
type frameMsg struct {
	player int64
	at     time.Time
}

var playerIDs atomic.Int64

// copiedMsg reports the result of copying dialogue text.
type copiedMsg struct {
	err error
}

// FinishedMsg is sent once every dialogue has run out or a quit action
// fired.
type FinishedMsg struct{}

// PlayerModel plays a world's dialogues, one stage step per frame.
type PlayerModel struct {
	id       int64
	world    *world.World
	renderer *Renderer
	theme    config.Theme
	fps      int

	keys KeyMap
	help help.Model

	pressed []dialogue.Key
	last    time.Time
	frames  []dialogue.Frame
	layouts map[string]*layout
	bells   int
	flash   int
	err     error
	note    string
	done    bool

	width  int
	height int
}

// NewPlayerModel returns a player for w. Font files are resolved relative to
// fontDir.
func NewPlayerModel(w *world.World, settings *config.Settings, fontDir string) PlayerModel {
	m := PlayerModel{
		id:       playerIDs.Add(1),
		world:    w,
		renderer: NewRenderer(NewFontBook(fontDir)),
		theme:    settings.Theme,
		fps:      settings.FPS,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		layouts:  make(map[string]*layout),
	}
	m.present()
	return m
}

// SetSize updates the view dimensions.
func (m *PlayerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

func (m PlayerModel) tick() tea.Cmd {
	id := m.id
	return tea.Tick(time.Second/time.Duration(max(m.fps, 1)), func(t time.Time) tea.Msg {
		return frameMsg{player: id, at: t}
	})
}

// Init starts the frame loop.
func (m PlayerModel) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages.
func (m PlayerModel) Update(msg tea.Msg) (PlayerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Restart):
			stopped := m.done
			m.restart()
			if stopped && !m.done {
				return m, m.tick()
			}
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyText()
		}
		m.pressed = append(m.pressed, DialogueKey(msg))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.note = "copy failed: " + msg.err.Error()
		} else {
			m.note = "copied"
		}
		return m, nil

	case frameMsg:
		if msg.player != m.id || m.done {
			return m, nil
		}
		m.step(msg.at)
		if m.done {
			return m, func() tea.Msg { return FinishedMsg{} }
		}
		return m, m.tick()
	}
	return m, nil
}

// step runs one stage frame with the keys pressed since the last one.
func (m *PlayerModel) step(now time.Time) {
	delta := 1 / float64(max(m.fps, 1))
	if !m.last.IsZero() {
		delta = min(now.Sub(m.last).Seconds(), maxDelta)
	}
	m.last = now

	frames, _, err := m.world.Stage().Step(dialogue.Input{Pressed: m.pressed, Delta: delta})
	m.pressed = nil
	if err != nil {
		m.err = err
	}
	m.setFrames(frames)

	if m.world.Bells > m.bells {
		m.bells = m.world.Bells
		m.flash = bellFrames
	} else if m.flash > 0 {
		m.flash--
	}
	m.done = m.world.Quit || m.world.Stage().Done()
}

func (m *PlayerModel) restart() {
	if err := m.world.Restart(); err != nil {
		m.err = err
		return
	}
	m.layouts = make(map[string]*layout)
	m.bells, m.flash = 0, 0
	m.note = ""
	m.err = nil
	m.done = false
	m.present()
}

// copyText copies the text of every visible dialogue to the clipboard.
func (m PlayerModel) copyText() tea.Cmd {
	var texts []string
	for _, f := range m.frames {
		if f.Visible && f.Text() != "" {
			texts = append(texts, f.Text())
		}
	}
	text := strings.Join(texts, "\n\n")
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return copiedMsg{err: clipboard.Write(ctx, text)}
	}
}

// present computes frames without stepping, for the first view.
func (m *PlayerModel) present() {
	dialogues := m.world.Stage().Dialogues()
	frames := make([]dialogue.Frame, 0, len(dialogues))
	for _, d := range dialogues {
		frames = append(frames, dialogue.Present(d))
	}
	m.setFrames(frames)
}

func (m *PlayerModel) setFrames(frames []dialogue.Frame) {
	m.frames = frames
	for i, f := range frames {
		l, ok := m.layouts[f.Name]
		if !ok {
			l = defaultLayout(i)
			m.layouts[f.Name] = l
		}
		l.apply(f)
	}
}

// defaultLayout puts the first dialogue on the left and the rest on the
// right.
func defaultLayout(index int) *layout {
	if index == 0 {
		return &layout{}
	}
	return &layout{position: dialogue.Edges{Right: dialogue.Px(0)}}
}

// View renders the player.
func (m PlayerModel) View() string {
	border := lipgloss.Color(m.theme.Border)
	if m.flash > 0 {
		border = ColorAccent
	}

	var boxes []string
	for _, f := range m.frames {
		if !f.Visible {
			continue
		}
		boxes = append(boxes, m.renderer.Box(f, *m.layouts[f.Name], border, m.width, max(m.height-2, 1)))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, boxes...)

	status := m.statusLine()
	helpView := HelpStyle.Render(m.help.View(m.keys))

	bodyHeight := max(m.height-lipgloss.Height(status)-lipgloss.Height(helpView), 0)
	view := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		status,
		helpView,
	)

	bg := m.world.Background
	if bg == "" {
		bg = m.theme.Background
	}
	if bg == "" || m.width == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, view,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(bg)))
}

func (m PlayerModel) statusLine() string {
	var parts []string
	if title := m.world.Title(); title != "" {
		parts = append(parts, TitleStyle.Render(title))
	}
	if m.world.Status != "" {
		parts = append(parts, StatusStyle.Render(m.world.Status))
	}
	if m.note != "" {
		parts = append(parts, HelpStyle.Render(m.note))
	}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render(firstLine(m.err.Error())))
	}
	line := strings.Join(parts, " ")
	if m.width > 0 && lipgloss.Width(line) > m.width {
		plain := strings.Join([]string{m.world.Title(), m.world.Status}, " ")
		line = runewidth.Truncate(plain, m.width, "…")
	}
	return line
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
