package harness

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Markers delimiting the instruction block this tool owns inside a target
// file. Content outside the markers is never touched.
const (
	StartMarker = "# Agent Work Log"
	EndMarker   = "<!-- End Agent Work Log -->"
)

// ErrUnterminatedBlock is reported when a file contains the start marker but
// not the end marker. Guessing the extent of a malformed block risks
// destroying user content, so the file is left alone.
var ErrUnterminatedBlock = errors.New("instruction block has no end marker; add " + EndMarker + " manually")

// instructionBlock returns the full marker-delimited block, markers included.
func instructionBlock() string {
	return StartMarker + "\n\n" + strings.TrimSpace(instructionBody) + "\n\n" + EndMarker
}

// upsertBlock returns content with the instruction block freshly in place.
//
// Empty input yields just the block. When both markers are present the
// delimited range is replaced and surrounding content preserved verbatim.
// When neither is present the block is appended after a blank line; this
// covers whitespace-only files too, so their bytes survive untouched.
func upsertBlock(existing string) (string, error) {
	block := instructionBlock()
	if existing == "" {
		return block + "\n", nil
	}

	start := strings.Index(existing, StartMarker)
	end := strings.Index(existing, EndMarker)

	switch {
	case start >= 0 && end >= start:
		return existing[:start] + block + existing[end+len(EndMarker):], nil
	case start >= 0:
		return "", ErrUnterminatedBlock
	default:
		return ensureTrailingNewline(existing) + "\n" + block + "\n", nil
	}
}

// removeBlock strips the instruction block, markers included. The bool
// reports whether a block was found.
func removeBlock(existing string) (string, bool, error) {
	start := strings.Index(existing, StartMarker)
	end := strings.Index(existing, EndMarker)

	switch {
	case start >= 0 && end >= start:
		return spliceSeam(existing[:start], existing[end+len(EndMarker):]), true, nil
	case start >= 0:
		return "", false, ErrUnterminatedBlock
	default:
		return existing, false, nil
	}
}

// installBlockFile ensures path contains exactly one current instruction block.
func installBlockFile(path string) Result {
	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return failed("instructions", fmt.Sprintf("read %s: %v", path, err))
	}

	updated, err := upsertBlock(existing)
	if err != nil {
		return failed("instructions", fmt.Sprintf("%s: %v", path, err))
	}
	if updated == existing {
		return skipped("instructions", fmt.Sprintf("instruction block already current in %s", path))
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return failed("instructions", fmt.Sprintf("write %s: %v", path, err))
	}
	return ok("instructions", "instruction block updated in "+path)
}

// uninstallBlockFile removes the instruction block from path. A file left
// whitespace-only afterward is deleted entirely.
func uninstallBlockFile(path string) Result {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return skipped("instructions", "instruction block already removed")
	}
	if err != nil {
		return failed("instructions", fmt.Sprintf("read %s: %v", path, err))
	}

	remainder, found, err := removeBlock(string(data))
	if err != nil {
		return failed("instructions", fmt.Sprintf("%s: %v", path, err))
	}
	if !found {
		return skipped("instructions", "instruction block already removed")
	}

	if strings.TrimSpace(remainder) == "" {
		if err := os.Remove(path); err != nil {
			return failed("instructions", fmt.Sprintf("remove %s: %v", path, err))
		}
		return ok("instructions", "removed "+path)
	}

	if err := os.WriteFile(path, []byte(remainder), 0644); err != nil {
		return failed("instructions", fmt.Sprintf("write %s: %v", path, err))
	}
	return ok("instructions", "instruction block removed from "+path)
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// spliceSeam joins the content surrounding a cut-out block, trimming only
// the blank-line runs that touch the cut. Blank lines elsewhere in user
// content are not ours to rewrite.
func spliceSeam(prefix, suffix string) string {
	p := strings.TrimRight(prefix, "\n")
	s := strings.TrimLeft(suffix, "\n")
	switch {
	case p == "":
		return s
	case s == "":
		return p + "\n"
	default:
		return p + "\n\n" + s
	}
}
