package qdrant

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
)

// parsePointID classifies an ID string: UUIDs and unsigned integers are the
// only forms Qdrant accepts.
func parsePointID(id string) (*pb.PointId, error) {
	if _, err := uuid.Parse(id); err == nil {
		return &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id}}, nil
	}
	if num, err := strconv.ParseUint(id, 10, 64); err == nil {
		return &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: num}}, nil
	}
	return nil, fmt.Errorf("point ID %q is neither a UUID nor an unsigned integer", id)
}

func parsePointIDs(ids []string) ([]*pb.PointId, error) {
	out := make([]*pb.PointId, len(ids))
	for i, id := range ids {
		pid, err := parsePointID(id)
		if err != nil {
			return nil, err
		}
		out[i] = pid
	}
	return out, nil
}

// pointIDString renders a PointId back to its flat form.
func pointIDString(id *pb.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// toQdrantValue converts a Go value (as decoded from JSON) to a Qdrant
// payload value, including nested objects and lists.
func toQdrantValue(v any) *pb.Value {
	switch val := v.(type) {
	case nil:
		return &pb.Value{Kind: &pb.Value_NullValue{}}
	case string:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: val}}
	case int:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(val)}}
	case int64:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: val}}
	case float64:
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: val}}
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: val}}
	case []any:
		values := make([]*pb.Value, len(val))
		for i, item := range val {
			values[i] = toQdrantValue(item)
		}
		return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
	case map[string]any:
		return &pb.Value{Kind: &pb.Value_StructValue{StructValue: &pb.Struct{Fields: toQdrantPayload(val)}}}
	default:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: fmt.Sprintf("%v", val)}}
	}
}

// fromQdrantValue converts a Qdrant payload value back to a Go value.
func fromQdrantValue(v *pb.Value) any {
	switch k := v.Kind.(type) {
	case *pb.Value_StringValue:
		return k.StringValue
	case *pb.Value_IntegerValue:
		return k.IntegerValue
	case *pb.Value_DoubleValue:
		return k.DoubleValue
	case *pb.Value_BoolValue:
		return k.BoolValue
	case *pb.Value_ListValue:
		items := make([]any, len(k.ListValue.GetValues()))
		for i, item := range k.ListValue.GetValues() {
			items[i] = fromQdrantValue(item)
		}
		return items
	case *pb.Value_StructValue:
		return fromQdrantPayload(k.StructValue.GetFields())
	default:
		return nil
	}
}

func toQdrantPayload(payload map[string]any) map[string]*pb.Value {
	out := make(map[string]*pb.Value, len(payload))
	for k, v := range payload {
		out[k] = toQdrantValue(v)
	}
	return out
}

func fromQdrantPayload(payload map[string]*pb.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = fromQdrantValue(v)
	}
	return out
}
