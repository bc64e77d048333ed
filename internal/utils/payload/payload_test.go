package payload

import (
	"reflect"
	"testing"
)

func testObj() map[string]any {
	return map[string]any{
		"level1": map[string]any{
			"level2": map[string]any{
				"level3": "value",
			},
			"array": []any{1, 2, 3},
		},
		"root_key": "root_value",
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		createMissing bool
		wantOK        bool
		wantKey       string
	}{
		{"nested dot path", "level1.level2.level3", false, true, "level3"},
		{"root key", "root_key", false, true, "root_key"},
		{"empty path", "", false, true, ""},
		{"slash root", "/", false, true, ""},
		{"slash separated", "/level1/level2/level3", false, true, "level3"},
		{"missing without create", "nonexistent.path", false, false, ""},
		{"through non-map", "level1.array.invalid", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := testObj()
			parent, key, ok := Resolve(obj, tt.path, tt.createMissing)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if key != tt.wantKey {
				t.Errorf("Resolve(%q) key = %q, want %q", tt.path, key, tt.wantKey)
			}
			if key == "" && !reflect.DeepEqual(parent, obj) {
				t.Errorf("Root path should resolve to the object itself")
			}
		})
	}
}

func TestResolveCreatesMissing(t *testing.T) {
	obj := testObj()

	parent, key, ok := Resolve(obj, "new_key.subkey", true)
	if !ok {
		t.Fatal("Expected resolution to succeed with createMissing")
	}
	if key != "subkey" {
		t.Errorf("Expected key 'subkey', got %q", key)
	}

	created, isMap := obj["new_key"].(map[string]any)
	if !isMap {
		t.Fatal("Expected intermediate map to be created")
	}
	if !reflect.DeepEqual(parent, created) {
		t.Error("Parent should be the created intermediate map")
	}
}

func TestSet(t *testing.T) {
	obj := testObj()

	if !Set(obj, "level1.level2.new", 42) {
		t.Fatal("Set on nested path failed")
	}
	got := obj["level1"].(map[string]any)["level2"].(map[string]any)["new"]
	if got != 42 {
		t.Errorf("Expected 42, got %v", got)
	}

	if Set(obj, "/", "anything") {
		t.Error("Set on root path should fail")
	}
	if Set(obj, "level1.array.x", 1) {
		t.Error("Set through a non-map should fail")
	}
}

func TestDelete(t *testing.T) {
	obj := testObj()

	if !Delete(obj, "level1.level2.level3") {
		t.Fatal("Delete on existing path failed")
	}
	level2 := obj["level1"].(map[string]any)["level2"].(map[string]any)
	if _, exists := level2["level3"]; exists {
		t.Error("level3 should have been removed")
	}

	if Delete(obj, "level1.missing") {
		t.Error("Delete on missing key should report failure")
	}
	if Delete(obj, "") {
		t.Error("Delete on root path should report failure")
	}
}

func TestMerge(t *testing.T) {
	obj := map[string]any{"a": 1, "b": 2}
	Merge(obj, map[string]any{"b": 3, "c": 4})

	want := map[string]any{"a": 1, "b": 3, "c": 4}
	if !reflect.DeepEqual(obj, want) {
		t.Errorf("Expected %v, got %v", want, obj)
	}
}
