package harness

import (
	"fmt"
	"os"
	"path/filepath"
)

// markdownHarness is the universal fallback: it writes only the
// marker-delimited Markdown block, with no tool-specific detection. It
// always reports itself available but is excluded from registry detection.
type markdownHarness struct {
	home string
	cwd  string
}

func newMarkdown(home, cwd string) *markdownHarness {
	return &markdownHarness{home: home, cwd: cwd}
}

func (h *markdownHarness) Name() string { return "markdown" }

func (h *markdownHarness) Capabilities() Caps {
	return Caps{Hooks: false, Skills: false, Global: true}
}

func (h *markdownHarness) SessionEnvVar() string { return "" }

func (h *markdownHarness) Detect() bool { return true }

func (h *markdownHarness) ConfigDir(global bool) (string, error) {
	if global {
		return h.home, nil
	}
	return h.cwd, nil
}

func (h *markdownHarness) instructionsPath(global bool) (string, error) {
	dir, err := h.ConfigDir(global)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "AGENTS.md"), nil
}

func (h *markdownHarness) Install(global bool) []Result {
	path, err := h.instructionsPath(global)
	if err != nil {
		return []Result{failed("instructions", err.Error())}
	}
	return []Result{installBlockFile(path)}
}

func (h *markdownHarness) Uninstall(global bool) []Result {
	path, err := h.instructionsPath(global)
	if err != nil {
		return []Result{failed("instructions", err.Error())}
	}
	return []Result{uninstallBlockFile(path)}
}

// ensureParentDir creates the directory containing path.
func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return nil
}
