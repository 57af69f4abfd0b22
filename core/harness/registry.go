package harness

import (
	"fmt"
	"os"
)

// =============================================================================
// Registry
// =============================================================================

// Registry holds every known harness variant. Variants are fixed at build
// time; there is no runtime plugin loading.
type Registry struct {
	harnesses []Harness
	fallback  Harness
}

// NewRegistry builds the registry over the current user's home directory
// and working directory.
func NewRegistry() (*Registry, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working dir: %w", err)
	}
	return newRegistryAt(home, cwd), nil
}

// newRegistryAt builds a registry rooted at explicit directories. Tests use
// this to operate on temporary trees.
func newRegistryAt(home, cwd string) *Registry {
	return &Registry{
		harnesses: []Harness{
			newClaude(home, cwd),
			newCursor(home, cwd),
			newCodex(home, cwd),
		},
		fallback: newMarkdown(home, cwd),
	}
}

// All returns every variant, the universal fallback last.
func (r *Registry) All() []Harness {
	return append(append([]Harness{}, r.harnesses...), r.fallback)
}

// Lookup resolves a harness by name, fallback included.
func (r *Registry) Lookup(name string) (Harness, bool) {
	for _, h := range r.All() {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// DetectAll returns the non-fallback variants whose tools appear to be in
// use. The fallback is never "detected", only used as a last resort.
func (r *Registry) DetectAll() []Harness {
	var detected []Harness
	for _, h := range r.harnesses {
		if h.Detect() {
			detected = append(detected, h)
		}
	}
	return detected
}

// =============================================================================
// Orchestration
// =============================================================================

type operation func(Harness, bool) []Result

// InstallAuto installs into the named harness, or into every detected
// harness when name is empty (falling back to the universal Markdown
// variant when nothing is detected). Harnesses that do not support the
// requested scope are reported as skipped, not failed.
func (r *Registry) InstallAuto(global bool, name string) map[string][]Result {
	return r.run(global, name, Harness.Install, "install")
}

// UninstallAuto mirrors InstallAuto.
func (r *Registry) UninstallAuto(global bool, name string) map[string][]Result {
	return r.run(global, name, Harness.Uninstall, "uninstall")
}

func (r *Registry) run(global bool, name string, op operation, verb string) map[string][]Result {
	results := map[string][]Result{}

	if name != "" {
		h, found := r.Lookup(name)
		if !found {
			results[name] = []Result{failed(verb, fmt.Sprintf("unknown harness %q", name))}
			return results
		}
		if global && !h.Capabilities().Global {
			results[name] = []Result{failed(verb, fmt.Sprintf("harness %q does not support global scope", name))}
			return results
		}
		results[h.Name()] = op(h, global)
		return results
	}

	detected := r.DetectAll()
	if len(detected) == 0 {
		results[r.fallback.Name()] = op(r.fallback, global)
		return results
	}

	for _, h := range detected {
		if global && !h.Capabilities().Global {
			results[h.Name()] = []Result{skipped(verb, fmt.Sprintf("%s skipped: no global scope support", verb))}
			continue
		}
		results[h.Name()] = op(h, global)
	}
	return results
}
