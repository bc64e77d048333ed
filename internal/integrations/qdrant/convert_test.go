package qdrant

import (
	"reflect"
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
)

func TestValueConversion(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{"string", "hello", "hello"},
		{"int", 123, int64(123)}, // Qdrant stores ints as int64
		{"float", 3.14, 3.14},
		{"bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qVal := toQdrantValue(tt.input)
			goVal := fromQdrantValue(qVal)

			if goVal != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, goVal)
			}
		})
	}
}

func TestCompositeValueConversion(t *testing.T) {
	input := map[string]any{
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"count": int64(2)},
	}

	roundTripped := fromQdrantValue(toQdrantValue(input))
	if !reflect.DeepEqual(roundTripped, input) {
		t.Errorf("Expected %v, got %v", input, roundTripped)
	}
}

func TestNilValue(t *testing.T) {
	qVal := &pb.Value{Kind: &pb.Value_NullValue{}}
	goVal := fromQdrantValue(qVal)
	if goVal != nil {
		t.Errorf("Expected nil for null value, got %v", goVal)
	}
}

func TestParsePointID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		num     bool
	}{
		{"uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false, false},
		{"numeric", "42", false, true},
		{"arbitrary string", "doc-1", true, false},
		{"negative number", "-5", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid, err := parsePointID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePointID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.num && pid.GetNum() != 42 {
				t.Errorf("Expected numeric ID 42, got %v", pid)
			}
			if pointIDString(pid) != tt.id {
				t.Errorf("Round trip of %q gave %q", tt.id, pointIDString(pid))
			}
		})
	}
}
