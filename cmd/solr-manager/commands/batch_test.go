package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocsArgInline(t *testing.T) {
	documents, err := loadDocsArg(`[{"id":"1"},{"id":"2"}]`)
	if err != nil {
		t.Fatalf("loadDocsArg failed: %v", err)
	}
	if len(documents) != 2 || documents[0]["id"] != "1" {
		t.Errorf("Unexpected documents %v", documents)
	}

	documents, err = loadDocsArg(`{"id":"solo"}`)
	if err != nil {
		t.Fatalf("loadDocsArg failed for single object: %v", err)
	}
	if len(documents) != 1 || documents[0]["id"] != "solo" {
		t.Errorf("Unexpected documents %v", documents)
	}
}

func TestLoadDocsArgFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	if err := os.WriteFile(path, []byte(`[{"id":"a","title":"from file"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	documents, err := loadDocsArg(path)
	if err != nil {
		t.Fatalf("loadDocsArg failed: %v", err)
	}
	if len(documents) != 1 || documents[0]["title"] != "from file" {
		t.Errorf("Unexpected documents %v", documents)
	}
}

func TestBatchFlagExclusivity(t *testing.T) {
	defer func() {
		batchAddUpdate = ""
		batchDeleteDocs = false
		batchIDs = ""
		batchIDFile = ""
		batchQuery = ""
		rootCmd.SetArgs(nil)
	}()

	tests := []struct {
		name string
		args []string
	}{
		{"both modes", []string{"batch", "--add-update", `[{"id":"1"}]`, "--delete-docs"}},
		{"no mode", []string{"batch"}},
		{"add with ids", []string{"batch", "--add-update", `[{"id":"1"}]`, "--ids", "1"}},
		{"query with ids", []string{"batch", "--delete-docs", "--query", "*:*", "--ids", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batchAddUpdate = ""
			batchDeleteDocs = false
			batchIDs = ""
			batchIDFile = ""
			batchQuery = ""
			rootCmd.SetArgs(tt.args)
			if err := rootCmd.Execute(); err == nil {
				t.Errorf("Expected flag group error for %v", tt.args)
			}
		})
	}
}

func TestLoadDocsArgRejectsBadInput(t *testing.T) {
	for _, arg := range []string{"", "not json", `["just","strings"]`} {
		if _, err := loadDocsArg(arg); err == nil {
			t.Errorf("Expected error for %q", arg)
		}
	}
}
