// Package docs parses the document and ID inputs shared by the batch and
// get commands.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Parse decodes the --doc argument: either a single JSON object or an
// array of objects. Anything else is an error.
func Parse(raw string) ([]map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty document")
	}

	if strings.HasPrefix(raw, "[") {
		var list []map[string]any
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("invalid JSON document list: %w", err)
		}
		return list, nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return []map[string]any{doc}, nil
}

// LoadIDFile reads document IDs from a file, one per line. Blank lines and
// surrounding whitespace are dropped.
func LoadIDFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ID file: %w", err)
	}

	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SplitIDs parses a comma-separated ID list, dropping empty entries.
func SplitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Chunk splits items into fixed-size pages. The final page may be shorter.
// A non-positive size yields a single page.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}

	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}
