package qdrant

import (
	"encoding/json"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
)

// filterCondition is the JSON shape accepted by --filter: a single
// condition or a list of them, each matched as a must-clause.
//
//	{"key": "category", "match": {"value": "product"}}
type filterCondition struct {
	Key   string `json:"key"`
	Match *struct {
		Value any `json:"value"`
	} `json:"match"`
}

// ParseFilter builds a Qdrant filter from the JSON given on the command
// line. Invalid structure is an error, never a silently empty filter.
func ParseFilter(raw string) (*pb.Filter, error) {
	var conditions []filterCondition

	var single filterCondition
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		conditions = []filterCondition{single}
	} else {
		if listErr := json.Unmarshal([]byte(raw), &conditions); listErr != nil {
			return nil, fmt.Errorf("invalid JSON in filter: %s", raw)
		}
	}

	if len(conditions) == 0 {
		return nil, fmt.Errorf("filter contains no conditions")
	}

	must := make([]*pb.Condition, len(conditions))
	for i, c := range conditions {
		if c.Key == "" || c.Match == nil {
			return nil, fmt.Errorf("invalid filter structure: each condition needs 'key' and 'match'")
		}
		cond, err := matchCondition(c.Key, c.Match.Value)
		if err != nil {
			return nil, err
		}
		must[i] = cond
	}

	return &pb.Filter{Must: must}, nil
}

func matchCondition(key string, value any) (*pb.Condition, error) {
	switch v := value.(type) {
	case string:
		return pb.NewMatch(key, v), nil
	case bool:
		return pb.NewMatchBool(key, v), nil
	case float64:
		if v != float64(int64(v)) {
			return nil, fmt.Errorf("filter field %q: float match values are not supported by Qdrant", key)
		}
		return pb.NewMatchInt(key, int64(v)), nil
	default:
		return nil, fmt.Errorf("filter field %q: unsupported match value type %T", key, value)
	}
}
