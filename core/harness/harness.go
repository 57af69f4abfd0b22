// Package harness installs work-log usage instructions into the
// configuration surfaces of AI coding tools. Each harness variant covers
// one tool's convention; the registry orchestrates detection and
// install/uninstall across all of them.
package harness

// =============================================================================
// Capability Set
// =============================================================================

// Caps declares which operations a harness variant supports. The registry
// consults these before attempting scope-specific operations.
type Caps struct {
	Hooks  bool
	Skills bool
	Global bool
}

// Harness is one tool's configuration convention. Install and Uninstall are
// idempotent and never return an error: every failure is captured as a
// Result so sibling sub-actions still run.
type Harness interface {
	Name() string
	Detect() bool
	Capabilities() Caps
	ConfigDir(global bool) (string, error)
	SessionEnvVar() string
	Install(global bool) []Result
	Uninstall(global bool) []Result
}

// =============================================================================
// Results
// =============================================================================

// Result records one sub-action of an install or uninstall.
type Result struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Message string `json:"message"`
}

func ok(action, message string) Result {
	return Result{Action: action, Success: true, Message: message}
}

func skipped(action, message string) Result {
	return Result{Action: action, Success: true, Skipped: true, Message: message}
}

func failed(action, message string) Result {
	return Result{Action: action, Success: false, Message: message}
}

// AnyFailed reports whether any sub-action in the collection failed.
func AnyFailed(results map[string][]Result) bool {
	for _, rs := range results {
		for _, r := range rs {
			if !r.Success {
				return true
			}
		}
	}
	return false
}
