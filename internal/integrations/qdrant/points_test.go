package qdrant

import (
	"testing"
)

func TestSetPayloadRequest(t *testing.T) {
	ids, err := parsePointIDs([]string{"1", "2"})
	if err != nil {
		t.Fatalf("parsePointIDs failed: %v", err)
	}
	payload := map[string]any{"status": "archived"}

	req := setPayloadRequest("docs", ids, payload, "metadata.tags")
	if req.CollectionName != "docs" {
		t.Errorf("Expected collection docs, got %s", req.CollectionName)
	}
	if req.Key == nil || *req.Key != "metadata.tags" {
		t.Errorf("Expected key metadata.tags, got %v", req.Key)
	}
	if req.Payload["status"].GetStringValue() != "archived" {
		t.Errorf("Unexpected payload %v", req.Payload)
	}
	selected := req.PointsSelector.GetPoints().GetIds()
	if len(selected) != 2 || selected[0].GetNum() != 1 {
		t.Errorf("Unexpected selector %v", selected)
	}
}

func TestSetPayloadRequestRootKey(t *testing.T) {
	req := setPayloadRequest("docs", nil, map[string]any{"a": 1}, "")
	if req.Key != nil {
		t.Errorf("Expected no key for root payload, got %q", *req.Key)
	}
}
