// Package loader reads thread records from JSONL exports: one JSON object
// per line, blank lines ignored, malformed lines skipped with a warning.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/threadline/pkg/model"
)

// DataDirEnvVar overrides the directory searched for thread data files.
const DataDirEnvVar = "THREADLINE_DIR"

// PreferredJSONLNames defines the priority order for thread data files.
var PreferredJSONLNames = []string{"threads.jsonl", "chats.jsonl"}

// maxLineBytes bounds a single JSONL record; previews are short but labels
// and participant lists can add up.
const maxLineBytes = 1 << 20

// GetDataDir returns the thread data directory, respecting THREADLINE_DIR.
// Falls back to .threadline under the given root (or cwd if empty).
func GetDataDir(root string) (string, error) {
	if envDir := os.Getenv(DataDirEnvVar); envDir != "" {
		return envDir, nil
	}
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	return filepath.Join(root, ".threadline"), nil
}

// FindJSONLPath locates the thread JSONL file in the given directory,
// preferring the canonical names in PreferredJSONLNames and skipping
// backups and merge artifacts.
func FindJSONLPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") || strings.Contains(name, ".merge") {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no thread JSONL file found in %s", dir)
	}

	for _, preferred := range PreferredJSONLNames {
		for _, name := range candidates {
			if name == preferred {
				return filepath.Join(dir, name), nil
			}
		}
	}
	return filepath.Join(dir, candidates[0]), nil
}

// LoadThreadsFromFile reads all threads from a JSONL file.
func LoadThreadsFromFile(path string) ([]model.Thread, error) {
	return LoadThreadsFromFileWithWarnings(path, nil)
}

// LoadThreadsFromFileWithWarnings is like LoadThreadsFromFile but reports
// skipped lines through the optional callback.
func LoadThreadsFromFileWithWarnings(path string, warnFunc func(msg string)) ([]model.Thread, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	warn := warnFunc
	if warn == nil {
		warn = func(string) {}
	}

	var threads []model.Thread
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var t model.Thread
		if err := json.Unmarshal(line, &t); err != nil {
			warn(fmt.Sprintf("%s:%d: skipping malformed record: %v", path, lineNo, err))
			continue
		}
		if err := t.Validate(); err != nil {
			warn(fmt.Sprintf("%s:%d: skipping invalid record: %v", path, lineNo, err))
			continue
		}
		threads = append(threads, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return threads, nil
}

// CountThreads returns the number of valid records in a JSONL file without
// keeping them in memory. Used during source validation.
func CountThreads(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var t model.Thread
		if err := json.Unmarshal(line, &t); err != nil {
			continue
		}
		if t.Validate() == nil {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
