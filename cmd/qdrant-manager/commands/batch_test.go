package commands

import (
	"reflect"
	"testing"
)

func resetBatchFlags() {
	batchAdd = false
	batchReplace = false
	batchDelete = false
	batchDoc = ""
	batchSelector = ""
	batchIDs = ""
	batchIDFile = ""
	batchFilter = ""
}

func TestBatchOpFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		wantKind string
		wantErr  bool
	}{
		{
			name:     "add with doc",
			setup:    func() { batchAdd = true; batchDoc = `{"status":"archived"}` },
			wantKind: "add",
		},
		{
			name:     "replace with selector",
			setup:    func() { batchReplace = true; batchDoc = `{"a":1}`; batchSelector = "metadata" },
			wantKind: "replace",
		},
		{
			name:     "replace at root",
			setup:    func() { batchReplace = true; batchDoc = `{"a":1}`; batchSelector = "/" },
			wantKind: "replace",
		},
		{
			name:     "delete with selector",
			setup:    func() { batchDelete = true; batchSelector = "metadata.old" },
			wantKind: "delete",
		},
		{
			name:    "no operation",
			setup:   func() {},
			wantErr: true,
		},
		{
			name:    "add without doc",
			setup:   func() { batchAdd = true },
			wantErr: true,
		},
		{
			name:    "add with invalid doc",
			setup:   func() { batchAdd = true; batchDoc = `not json` },
			wantErr: true,
		},
		{
			name:    "delete at root",
			setup:   func() { batchDelete = true },
			wantErr: true,
		},
		{
			name:    "delete at slash root",
			setup:   func() { batchDelete = true; batchSelector = "/" },
			wantErr: true,
		},
		{
			name:    "delete with doc",
			setup:   func() { batchDelete = true; batchSelector = "x"; batchDoc = `{}` },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetBatchFlags()
			tt.setup()
			op, err := batchOpFromFlags()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("batchOpFromFlags failed: %v", err)
			}
			if op.kind != tt.wantKind {
				t.Errorf("Expected kind %q, got %q", tt.wantKind, op.kind)
			}
		})
	}
	resetBatchFlags()
}

func TestBatchFlagExclusivity(t *testing.T) {
	defer func() {
		resetBatchFlags()
		rootCmd.SetArgs(nil)
	}()

	tests := []struct {
		name string
		args []string
	}{
		{"two operations", []string{"batch", "--add", "--delete", "--doc", `{}`, "--ids", "1"}},
		{"no operation", []string{"batch", "--ids", "1"}},
		{"filter with ids", []string{"batch", "--delete", "--selector", "x", "--ids", "1", "--filter", `{"key":"a","match":{"value":"b"}}`}},
		{"no selection", []string{"batch", "--delete", "--selector", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetBatchFlags()
			rootCmd.SetArgs(tt.args)
			if err := rootCmd.Execute(); err == nil {
				t.Errorf("Expected flag group error for %v", tt.args)
			}
		})
	}
}

func TestApplyReplaceNested(t *testing.T) {
	p := map[string]any{"metadata": map[string]any{"old": true, "keep": 1}}

	if err := applyReplace(p, "metadata", map[string]any{"fresh": true}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	want := map[string]any{"metadata": map[string]any{"fresh": true}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Expected %v, got %v", want, p)
	}
}

func TestApplyReplaceRoot(t *testing.T) {
	for _, selector := range []string{"", "/"} {
		p := map[string]any{"title": "doc", "metadata": map[string]any{"old": true}}

		if err := applyReplace(p, selector, map[string]any{"status": "reset"}); err != nil {
			t.Fatalf("Root replace with selector %q failed: %v", selector, err)
		}
		want := map[string]any{"status": "reset"}
		if !reflect.DeepEqual(p, want) {
			t.Errorf("Selector %q: expected whole payload swapped to %v, got %v", selector, want, p)
		}
	}
}

func TestSelectorKey(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"", ""},
		{"/", ""},
		{"metadata", "metadata"},
		{"metadata.tags", "metadata.tags"},
		{"metadata/tags", "metadata.tags"},
		{"/metadata/tags", "metadata.tags"},
	}

	for _, tt := range tests {
		if got := selectorKey(tt.selector); got != tt.want {
			t.Errorf("selectorKey(%q) = %q, want %q", tt.selector, got, tt.want)
		}
	}
}

func TestSelectionIDs(t *testing.T) {
	ids, err := selectionIDs("a, b,c", "")
	if err != nil {
		t.Fatalf("selectionIDs failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("Unexpected ids %v", ids)
	}

	ids, err = selectionIDs("", "")
	if err != nil || ids != nil {
		t.Errorf("Expected nil ids for empty flags, got %v, %v", ids, err)
	}

	if _, err := selectionIDs("", "/nonexistent/ids.txt"); err == nil {
		t.Error("Expected error for missing id file")
	}
}
