package tui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// ScriptSelectedMsg is sent when a script file is chosen in the picker.
type ScriptSelectedMsg struct {
	Path string
}

// pickerEntry is a file or directory shown in the picker.
type pickerEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// PickerModel browses the file system for dialogue scripts.
type PickerModel struct {
	currentDir string
	entries    []pickerEntry
	selected   int
	offset     int // For scrolling

	err error

	width  int
	height int
}

// NewPickerModel returns a picker opened at dir.
func NewPickerModel(dir string) PickerModel {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	m := PickerModel{currentDir: dir}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being shown.
func (m PickerModel) Dir() string {
	return m.currentDir
}

// loadDir loads the entries from the current directory
func (m *PickerModel) loadDir() {
	m.entries = nil
	m.selected = 0
	m.offset = 0
	m.err = nil

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.entries = append(m.entries, pickerEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []pickerEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		pe := pickerEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(m.currentDir, entry.Name()),
		}
		switch {
		case entry.IsDir():
			dirs = append(dirs, pe)
		case isScriptFile(entry.Name()):
			files = append(files, pe)
		}
	}

	byName := func(a, b pickerEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	// Dirs first, then files
	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func isScriptFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case "enter", "l", "right":
		if m.selected < len(m.entries) {
			entry := m.entries[m.selected]
			if !entry.IsDir {
				return m, func() tea.Msg {
					return ScriptSelectedMsg{Path: entry.Path}
				}
			}
			m.currentDir = entry.Path
			m.loadDir()
		}
	case "backspace", "h":
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.currentDir = parent
			m.loadDir()
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			m.currentDir = home
			m.loadDir()
		}
	case "g":
		m.selected = 0
		m.offset = 0
	case "G":
		m.selected = max(len(m.entries)-1, 0)
		m.adjustScroll()
	}
	return m, nil
}

func (m *PickerModel) visibleHeight() int {
	return max(m.height-8, 5) // header, path and help
}

func (m *PickerModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the picker.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(PickerTitleStyle.Render("Open Script (.yaml)"))
	b.WriteString("\n")
	b.WriteString(PickerPathStyle.Render(m.currentDir))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	divider := DividerStyle.Render(strings.Repeat("─", max(min(m.width-4, 60), 10)))
	b.WriteString(divider)
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(HelpStyle.Render("  (no scripts found)"))
		b.WriteString("\n")
	}

	nameWidth := max(m.width-12, 10)
	end := min(m.offset+m.visibleHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]

		icon := "[FILE] "
		style := PickerFileStyle
		if entry.IsDir {
			icon = "[DIR]  "
			style = PickerDirStyle
		}
		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = PickerSelectedStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(icon + runewidth.Truncate(entry.Name, nameWidth, "…")))
		b.WriteString("\n")
	}

	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: open • backspace: parent • ~: home • esc: quit"))

	return b.String()
}
