// Package metadata derives the contextual fields recorded with each work
// entry: session id, project name, git branch, and working directory.
// Collection is best-effort; version-control failures degrade to fallbacks
// and never abort the logging operation.
package metadata

import (
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Session id sources, first non-empty wins. The tool-specific variable
// takes priority over the generic fallback.
var sessionEnvVars = []string{"CLAUDE_SESSION_ID", "AW_SESSION_ID"}

// Meta holds the contextual attributes for one entry.
type Meta struct {
	SessionID        string
	ProjectName      string
	GitBranch        string
	WorkingDirectory string
}

// Collect gathers metadata for an entry logged from cwd. It never fails:
// ProjectName falls back to the base name of cwd and GitBranch is empty
// when the repository state is unreadable.
func Collect(cwd string) Meta {
	meta := Meta{
		SessionID:        sessionID(),
		ProjectName:      filepath.Base(cwd),
		WorkingDirectory: cwd,
	}

	repo, err := gogit.PlainOpenWithOptions(cwd, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return meta
	}

	if name := projectFromRemote(repo); name != "" {
		meta.ProjectName = name
	}
	meta.GitBranch = currentBranch(repo)
	return meta
}

func sessionID() string {
	for _, key := range sessionEnvVars {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// projectFromRemote extracts the project name from the origin remote URL:
// the last path segment with any trailing ".git" stripped.
func projectFromRemote(repo *gogit.Repository) string {
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}

	url := strings.TrimSuffix(strings.TrimRight(urls[0], "/"), ".git")
	url = strings.ReplaceAll(url, ":", "/")
	segments := strings.Split(url, "/")
	return segments[len(segments)-1]
}

func currentBranch(repo *gogit.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if !head.Name().IsBranch() {
		// Detached HEAD has no branch name to report.
		return ""
	}
	return head.Name().Short()
}
