package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adalundhe/aw/core/detect"
	"gopkg.in/yaml.v3"
)

// cursorHarness targets the cursor editor: a single project-local rule file
// with YAML front-matter. Cursor has no structured settings surface for
// hooks and no global scope for project rules.
type cursorHarness struct {
	home string
	cwd  string
}

func newCursor(home, cwd string) *cursorHarness {
	return &cursorHarness{home: home, cwd: cwd}
}

func (h *cursorHarness) Name() string { return "cursor" }

func (h *cursorHarness) Capabilities() Caps {
	return Caps{Hooks: false, Skills: false, Global: false}
}

func (h *cursorHarness) SessionEnvVar() string { return "" }

func (h *cursorHarness) Detect() bool {
	return detect.DirExists(filepath.Join(h.home, ".cursor")) ||
		detect.DirExists(filepath.Join(h.cwd, ".cursor")) ||
		detect.Which("cursor") != ""
}

func (h *cursorHarness) ConfigDir(global bool) (string, error) {
	if global {
		return "", errors.New("cursor rules are project-local only")
	}
	return filepath.Join(h.cwd, ".cursor"), nil
}

func (h *cursorHarness) rulePath() string {
	return filepath.Join(h.cwd, ".cursor", "rules", "aw.mdc")
}

type cursorFrontMatter struct {
	Description string `yaml:"description"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

func cursorRuleContent() (string, error) {
	fm, err := yaml.Marshal(cursorFrontMatter{Description: cursorRuleDescription, AlwaysApply: true})
	if err != nil {
		return "", err
	}
	return "---\n" + string(fm) + "---\n\n" + instructionBody + "\n", nil
}

func (h *cursorHarness) Install(global bool) []Result {
	if global {
		return []Result{failed("rule", "cursor does not support global install")}
	}

	content, err := cursorRuleContent()
	if err != nil {
		return []Result{failed("rule", fmt.Sprintf("render rule: %v", err))}
	}

	path := h.rulePath()
	if data, err := os.ReadFile(path); err == nil && string(data) == content {
		return []Result{skipped("rule", "rule file already current")}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return []Result{failed("rule", fmt.Sprintf("create %s: %v", filepath.Dir(path), err))}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return []Result{failed("rule", fmt.Sprintf("write %s: %v", path, err))}
	}
	return []Result{ok("rule", "rule file written to "+path)}
}

func (h *cursorHarness) Uninstall(global bool) []Result {
	if global {
		return []Result{failed("rule", "cursor does not support global uninstall")}
	}

	path := h.rulePath()
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return []Result{skipped("rule", "rule file already removed")}
	}
	if err != nil {
		return []Result{failed("rule", fmt.Sprintf("remove %s: %v", path, err))}
	}
	_ = os.Remove(filepath.Dir(path))
	return []Result{ok("rule", "rule file removed")}
}
