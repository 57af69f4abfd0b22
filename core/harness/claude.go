package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adalundhe/aw/core/detect"
	"gopkg.in/yaml.v3"
)

// Settings entries owned by this tool inside the claude settings file.
const (
	claudePermission  = "Bash(aw:*)"
	claudeHookEvent   = "UserPromptSubmit"
	claudeHookCommand = "aw hooks remind"
)

// claudeHarness targets the claude CLI: a skill file, a JSON settings file
// with a permission allow-list and event hooks, and a marker block in
// CLAUDE.md.
type claudeHarness struct {
	home string
	cwd  string
}

func newClaude(home, cwd string) *claudeHarness {
	return &claudeHarness{home: home, cwd: cwd}
}

func (h *claudeHarness) Name() string { return "claude" }

func (h *claudeHarness) Capabilities() Caps {
	return Caps{Hooks: true, Skills: true, Global: true}
}

func (h *claudeHarness) SessionEnvVar() string { return "CLAUDE_SESSION_ID" }

func (h *claudeHarness) Detect() bool {
	return detect.DirExists(filepath.Join(h.home, ".claude")) || detect.Which("claude") != ""
}

func (h *claudeHarness) ConfigDir(global bool) (string, error) {
	if global {
		return filepath.Join(h.home, ".claude"), nil
	}
	return filepath.Join(h.cwd, ".claude"), nil
}

func (h *claudeHarness) Install(global bool) []Result {
	dir, err := h.ConfigDir(global)
	if err != nil {
		return []Result{failed("config", err.Error())}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return []Result{failed("config", fmt.Sprintf("create %s: %v", dir, err))}
	}

	results := []Result{h.installSkill(dir)}
	results = append(results, h.installSettings(dir)...)
	results = append(results, installBlockFile(filepath.Join(dir, "CLAUDE.md")))
	return results
}

func (h *claudeHarness) Uninstall(global bool) []Result {
	dir, err := h.ConfigDir(global)
	if err != nil {
		return []Result{failed("config", err.Error())}
	}

	results := []Result{h.uninstallSkill(dir)}
	results = append(results, h.uninstallSettings(dir)...)
	results = append(results, uninstallBlockFile(filepath.Join(dir, "CLAUDE.md")))
	return results
}

// =============================================================================
// Skill File
// =============================================================================

type skillFrontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func (h *claudeHarness) skillPath(dir string) string {
	return filepath.Join(dir, "skills", "aw", "SKILL.md")
}

func skillFileContent() (string, error) {
	fm, err := yaml.Marshal(skillFrontMatter{Name: "aw", Description: skillDescription})
	if err != nil {
		return "", err
	}
	return "---\n" + string(fm) + "---\n\n" + skillBody + "\n", nil
}

func (h *claudeHarness) installSkill(dir string) Result {
	path := h.skillPath(dir)
	content, err := skillFileContent()
	if err != nil {
		return failed("skill", fmt.Sprintf("render skill: %v", err))
	}

	if data, err := os.ReadFile(path); err == nil && string(data) == content {
		return skipped("skill", "skill file already current")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failed("skill", fmt.Sprintf("create %s: %v", filepath.Dir(path), err))
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return failed("skill", fmt.Sprintf("write %s: %v", path, err))
	}
	return ok("skill", "skill file written to "+path)
}

func (h *claudeHarness) uninstallSkill(dir string) Result {
	path := h.skillPath(dir)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return skipped("skill", "skill file already removed")
	}
	if err != nil {
		return failed("skill", fmt.Sprintf("remove %s: %v", path, err))
	}
	// Drop the now-empty skill directory; best effort.
	_ = os.Remove(filepath.Dir(path))
	return ok("skill", "skill file removed")
}

// =============================================================================
// Settings File
// =============================================================================

// loadSettings reads settings.json into a generic map so keys this tool
// does not own survive the round trip.
func loadSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	settings := map[string]any{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

func saveSettings(path string, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func (h *claudeHarness) installSettings(dir string) []Result {
	path := filepath.Join(dir, "settings.json")
	settings, err := loadSettings(path)
	if err != nil {
		msg := fmt.Sprintf("settings: %v", err)
		return []Result{failed("permission", msg), failed("hook", msg)}
	}

	changed := false
	var results []Result

	if addPermission(settings) {
		changed = true
		results = append(results, ok("permission", "permission added: "+claudePermission))
	} else {
		results = append(results, skipped("permission", "permission already exists"))
	}

	if addHook(settings) {
		changed = true
		results = append(results, ok("hook", fmt.Sprintf("%s hook added", claudeHookEvent)))
	} else {
		results = append(results, skipped("hook", "hook already exists"))
	}

	if changed {
		if err := saveSettings(path, settings); err != nil {
			return []Result{failed("permission", fmt.Sprintf("write %s: %v", path, err)),
				failed("hook", fmt.Sprintf("write %s: %v", path, err))}
		}
	}
	return results
}

func (h *claudeHarness) uninstallSettings(dir string) []Result {
	path := filepath.Join(dir, "settings.json")
	settings, err := loadSettings(path)
	if err != nil {
		msg := fmt.Sprintf("settings: %v", err)
		return []Result{failed("permission", msg), failed("hook", msg)}
	}

	changed := false
	var results []Result

	if removePermission(settings) {
		changed = true
		results = append(results, ok("permission", "permission removed"))
	} else {
		results = append(results, skipped("permission", "permission already removed"))
	}

	if removeHook(settings) {
		changed = true
		results = append(results, ok("hook", fmt.Sprintf("%s hook removed", claudeHookEvent)))
	} else {
		results = append(results, skipped("hook", "hook already removed"))
	}

	if changed {
		if err := saveSettings(path, settings); err != nil {
			return []Result{failed("permission", fmt.Sprintf("write %s: %v", path, err)),
				failed("hook", fmt.Sprintf("write %s: %v", path, err))}
		}
	}
	return results
}

// addPermission ensures the allow-list contains the aw permission.
// Reports whether the settings map changed.
func addPermission(settings map[string]any) bool {
	permissions, _ := settings["permissions"].(map[string]any)
	if permissions == nil {
		permissions = map[string]any{}
	}
	allow, _ := permissions["allow"].([]any)

	for _, entry := range allow {
		if s, ok := entry.(string); ok && s == claudePermission {
			return false
		}
	}

	permissions["allow"] = append(allow, claudePermission)
	settings["permissions"] = permissions
	return true
}

func removePermission(settings map[string]any) bool {
	permissions, _ := settings["permissions"].(map[string]any)
	if permissions == nil {
		return false
	}
	allow, _ := permissions["allow"].([]any)

	kept := make([]any, 0, len(allow))
	for _, entry := range allow {
		if s, ok := entry.(string); ok && s == claudePermission {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(allow) {
		return false
	}
	permissions["allow"] = kept
	return true
}

// addHook ensures the prompt-submission event runs the reminder command.
// Reports whether the settings map changed.
func addHook(settings map[string]any) bool {
	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
	}
	matchers, _ := hooks[claudeHookEvent].([]any)

	if hookPresent(matchers) {
		return false
	}

	matchers = append(matchers, map[string]any{
		"hooks": []any{
			map[string]any{"type": "command", "command": claudeHookCommand},
		},
	})
	hooks[claudeHookEvent] = matchers
	settings["hooks"] = hooks
	return true
}

func removeHook(settings map[string]any) bool {
	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		return false
	}
	matchers, _ := hooks[claudeHookEvent].([]any)

	kept := make([]any, 0, len(matchers))
	for _, matcher := range matchers {
		if matcherRunsCommand(matcher, claudeHookCommand) {
			continue
		}
		kept = append(kept, matcher)
	}
	if len(kept) == len(matchers) {
		return false
	}

	if len(kept) == 0 {
		delete(hooks, claudeHookEvent)
	} else {
		hooks[claudeHookEvent] = kept
	}
	return true
}

func hookPresent(matchers []any) bool {
	for _, matcher := range matchers {
		if matcherRunsCommand(matcher, claudeHookCommand) {
			return true
		}
	}
	return false
}

func matcherRunsCommand(matcher any, command string) bool {
	m, ok := matcher.(map[string]any)
	if !ok {
		return false
	}
	inner, _ := m["hooks"].([]any)
	for _, hook := range inner {
		hm, ok := hook.(map[string]any)
		if !ok {
			continue
		}
		if cmd, ok := hm["command"].(string); ok && cmd == command {
			return true
		}
	}
	return false
}
