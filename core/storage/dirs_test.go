package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRootEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(RootEnvVar, tmpDir)

	root, err := ResolveRoot()
	if err != nil {
		t.Fatalf("ResolveRoot failed: %v", err)
	}
	if root != tmpDir {
		t.Errorf("expected %s, got %s", tmpDir, root)
	}
}

func TestResolveRootDefault(t *testing.T) {
	t.Setenv(RootEnvVar, "")

	root, err := ResolveRoot()
	if err != nil {
		t.Fatalf("ResolveRoot failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	if root != filepath.Join(home, ".aw") {
		t.Errorf("unexpected default root: %s", root)
	}
}

func TestEnsureRootCreatesDir(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "aw")
	t.Setenv(RootEnvVar, tmpDir)

	root, err := EnsureRoot()
	if err != nil {
		t.Fatalf("EnsureRoot failed: %v", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("root not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("root should be a directory")
	}
}

func TestDBPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(RootEnvVar, tmpDir)

	path, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath failed: %v", err)
	}
	if path != filepath.Join(tmpDir, DBFileName) {
		t.Errorf("unexpected db path: %s", path)
	}
}
