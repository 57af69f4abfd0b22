// Package detect provides utilities for detecting companion tools in the system.
package detect

import (
	"os"
	"os/exec"
	"sync"
)

// pathCache stores cached binary lookups to avoid repeated filesystem operations.
type pathCache struct {
	mu          sync.RWMutex
	cache       map[string]string // binary -> full path
	lastPathEnv string            // PATH value when cache was populated
}

var globalCache = &pathCache{
	cache: make(map[string]string),
}

// Which finds a binary in PATH and returns its full path.
// Returns an empty string if the binary is not found.
// Results are cached; the cache is invalidated when PATH changes.
func Which(binary string) string {
	if binary == "" {
		return ""
	}

	if path, ok := tryReadCache(binary); ok {
		return path
	}

	return lookupAndCacheBinary(binary)
}

// DirExists reports whether path exists and is a directory.
// Used by harness detection heuristics; never returns an error.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func tryReadCache(binary string) (string, bool) {
	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()

	if globalCache.lastPathEnv != os.Getenv("PATH") {
		return "", false
	}
	path, ok := globalCache.cache[binary]
	return path, ok
}

func lookupAndCacheBinary(binary string) string {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	currentPath := os.Getenv("PATH")
	if globalCache.lastPathEnv != currentPath {
		globalCache.cache = make(map[string]string)
		globalCache.lastPathEnv = currentPath
	}

	if path, ok := globalCache.cache[binary]; ok {
		return path
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		globalCache.cache[binary] = ""
		return ""
	}
	globalCache.cache[binary] = path
	return path
}
