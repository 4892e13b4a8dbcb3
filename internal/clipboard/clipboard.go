// Package clipboard copies text to the system clipboard through the
// platform's clipboard tool.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// candidates lists clipboard commands per OS, in order of preference.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"cmd", "/c", "clip"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	},
}

// command returns the first candidate for goos whose program lookPath finds.
func command(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	cmds, ok := candidates[goos]
	if !ok {
		cmds = candidates["linux"]
	}
	for _, c := range cmds {
		if _, err := lookPath(c[0]); err == nil {
			return c, true
		}
	}
	return nil, false
}

// Write copies text to the system clipboard.
func Write(ctx context.Context, text string) error {
	argv, ok := command(runtime.GOOS, exec.LookPath)
	if !ok {
		return ErrUnavailable
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}

// Available reports whether a clipboard tool is installed.
func Available() bool {
	_, ok := command(runtime.GOOS, exec.LookPath)
	return ok
}
