package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/tui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [script.yaml]",
	Short: "Play a dialogue script",
	Long: `Play a dialogue script in the terminal.

Without a script, open the script picker in the config directory, or play
the bundled example when it holds no scripts.

Keys:
  space, enter   advance (or the keys the script sets)
  ctrl+r         restart the script
  ctrl+o         open another script
  ?              help
  esc, ctrl+c    quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, closeLog, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer closeLog()

	var app tui.AppModel
	switch {
	case len(args) == 1:
		w, err := loadWorld(args[0], settings)
		if err != nil {
			return err
		}
		app = tui.NewAppWithWorld(settings, w, filepath.Dir(args[0]))
	case hasScripts(getConfigDir()):
		app = tui.NewApp(settings, getConfigDir())
	default:
		w, err := exampleWorld(settings)
		if err != nil {
			return err
		}
		wd, _ := os.Getwd()
		app = tui.NewAppWithWorld(settings, w, wd)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// hasScripts reports whether dir holds any YAML file other than the
// settings file.
func hasScripts(dir string) bool {
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		for _, m := range matches {
			if filepath.Base(m) != config.FileName {
				return true
			}
		}
	}
	return false
}
