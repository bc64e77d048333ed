// Package output serializes retrieved documents as JSON or CSV, to stdout
// or to a file.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write serializes docs in the given format. An empty path writes to
// stdout.
func Write(docs []map[string]any, format, path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, docs)
	case FormatCSV:
		return writeCSV(w, docs)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, docs []map[string]any) error {
	if docs == nil {
		docs = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, docs []map[string]any) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}

	// Header is the sorted union of keys across all documents, so sparse
	// documents still line up.
	seen := make(map[string]struct{})
	var header []string
	for _, doc := range docs {
		for k := range doc {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, doc := range docs {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = formatField(doc[k])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatField renders a document field as a CSV cell. Composite values are
// embedded as JSON.
func formatField(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
