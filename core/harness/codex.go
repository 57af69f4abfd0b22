package harness

import (
	"path/filepath"

	"github.com/adalundhe/aw/core/detect"
)

// codexHarness targets the codex CLI: a bare Markdown instructions file
// with no structured settings.
type codexHarness struct {
	home string
	cwd  string
}

func newCodex(home, cwd string) *codexHarness {
	return &codexHarness{home: home, cwd: cwd}
}

func (h *codexHarness) Name() string { return "codex" }

func (h *codexHarness) Capabilities() Caps {
	return Caps{Hooks: false, Skills: false, Global: true}
}

func (h *codexHarness) SessionEnvVar() string { return "" }

func (h *codexHarness) Detect() bool {
	return detect.DirExists(filepath.Join(h.home, ".codex")) || detect.Which("codex") != ""
}

func (h *codexHarness) ConfigDir(global bool) (string, error) {
	if global {
		return filepath.Join(h.home, ".codex"), nil
	}
	return h.cwd, nil
}

func (h *codexHarness) instructionsPath(global bool) (string, error) {
	dir, err := h.ConfigDir(global)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "AGENTS.md"), nil
}

func (h *codexHarness) Install(global bool) []Result {
	path, err := h.instructionsPath(global)
	if err != nil {
		return []Result{failed("instructions", err.Error())}
	}
	if global {
		if err := ensureParentDir(path); err != nil {
			return []Result{failed("instructions", err.Error())}
		}
	}
	return []Result{installBlockFile(path)}
}

func (h *codexHarness) Uninstall(global bool) []Result {
	path, err := h.instructionsPath(global)
	if err != nil {
		return []Result{failed("instructions", err.Error())}
	}
	return []Result{uninstallBlockFile(path)}
}
