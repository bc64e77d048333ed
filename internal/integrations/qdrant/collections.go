package qdrant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"
)

// ParseDistance maps a config/flag value to a Qdrant distance metric.
func ParseDistance(name string) (pb.Distance, error) {
	switch strings.ToLower(name) {
	case "", "cosine":
		return pb.Distance_Cosine, nil
	case "dot":
		return pb.Distance_Dot, nil
	case "euclid", "euclidean":
		return pb.Distance_Euclid, nil
	case "manhattan":
		return pb.Distance_Manhattan, nil
	default:
		return pb.Distance_UnknownDistance, fmt.Errorf("unknown distance metric %q (expected cosine, dot, euclid, or manhattan)", name)
	}
}

// ParseFieldType maps a payload index type name to a Qdrant field schema.
func ParseFieldType(name string) (pb.FieldType, error) {
	switch strings.ToLower(name) {
	case "keyword":
		return pb.FieldType_FieldTypeKeyword, nil
	case "integer":
		return pb.FieldType_FieldTypeInteger, nil
	case "float":
		return pb.FieldType_FieldTypeFloat, nil
	case "geo":
		return pb.FieldType_FieldTypeGeo, nil
	case "text":
		return pb.FieldType_FieldTypeText, nil
	case "datetime":
		return pb.FieldType_FieldTypeDatetime, nil
	case "bool", "boolean":
		return pb.FieldType_FieldTypeBool, nil
	default:
		return pb.FieldType_FieldTypeKeyword, fmt.Errorf("unknown payload index type %q", name)
	}
}

// ListCollections returns all collection names, sorted.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	resp, err := c.collections.List(authCtx, &pb.ListCollectionsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	names := make([]string, 0, len(resp.Collections))
	for _, col := range resp.Collections {
		names = append(names, col.Name)
	}
	sort.Strings(names)
	return names, nil
}

// CollectionExists checks if a collection exists.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := c.ListCollections(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateCollection creates a collection from spec.
func (c *Client) CreateCollection(ctx context.Context, spec CollectionSpec) error {
	distance, err := ParseDistance(spec.Distance)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	req := &pb.CreateCollection{
		CollectionName: spec.Name,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     spec.VectorSize,
					Distance: distance,
				},
			},
		},
	}
	if spec.IndexingThreshold > 0 {
		req.OptimizersConfig = &pb.OptimizersConfigDiff{
			IndexingThreshold: &spec.IndexingThreshold,
		}
	}

	if _, err := c.collections.Create(authCtx, req); err != nil {
		return fmt.Errorf("failed to create collection %q: %w", spec.Name, err)
	}
	return nil
}

// DeleteCollection removes a collection. Deleting a collection that does
// not exist is not an error on the Qdrant side.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	if _, err := c.collections.Delete(authCtx, &pb.DeleteCollection{CollectionName: name}); err != nil {
		return fmt.Errorf("failed to delete collection %q: %w", name, err)
	}
	return nil
}

// CreatePayloadIndex indexes a payload field for filtering.
func (c *Client) CreatePayloadIndex(ctx context.Context, collection string, index PayloadIndex) error {
	fieldType, err := ParseFieldType(index.Type)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	_, err = c.points.CreateFieldIndex(authCtx, &pb.CreateFieldIndexCollection{
		CollectionName: collection,
		FieldName:      index.Field,
		FieldType:      fieldType.Enum(),
	})
	if err != nil {
		return fmt.Errorf("failed to create payload index on %q: %w", index.Field, err)
	}
	return nil
}

// CollectionInfo fetches status and vector configuration for a collection.
func (c *Client) CollectionInfo(ctx context.Context, name string) (*CollectionDetails, error) {
	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	resp, err := c.collections.Get(authCtx, &pb.GetCollectionInfoRequest{CollectionName: name})
	if err != nil {
		return nil, fmt.Errorf("failed to get info for collection %q: %w", name, err)
	}

	info := resp.GetResult()
	if info == nil {
		return nil, fmt.Errorf("empty info response for collection %q", name)
	}

	details := &CollectionDetails{
		Name:           name,
		Status:         info.GetStatus().String(),
		PointsCount:    derefUint64(info.PointsCount),
		IndexedVectors: derefUint64(info.IndexedVectorsCount),
		SegmentsCount:  info.GetSegmentsCount(),
	}
	details.VectorSize, details.Distance = vectorDetails(info)
	return details, nil
}

// vectorDetails digs the vector size and distance out of the collection
// config, tolerating missing intermediate structs.
func vectorDetails(info *pb.CollectionInfo) (uint64, string) {
	if info.GetConfig() == nil ||
		info.GetConfig().GetParams() == nil ||
		info.GetConfig().GetParams().GetVectorsConfig() == nil {
		return 0, ""
	}
	if cfg, ok := info.GetConfig().GetParams().GetVectorsConfig().Config.(*pb.VectorsConfig_Params); ok {
		return cfg.Params.Size, cfg.Params.Distance.String()
	}
	return 0, ""
}

func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
