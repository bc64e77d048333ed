// Package qdrant wraps the Qdrant gRPC client with the operations the
// manager CLI needs: collection administration, point retrieval, and
// payload updates.
package qdrant

// Point is a retrieved point with its payload and, optionally, its vector.
type Point struct {
	ID      string         `json:"id"`
	Payload map[string]any `json:"payload"`
	Vector  []float32      `json:"vector,omitempty"`
}

// CollectionSpec describes a collection to create.
type CollectionSpec struct {
	Name              string
	VectorSize        uint64
	Distance          string
	IndexingThreshold uint64
}

// PayloadIndex declares a payload field index, configured per profile.
type PayloadIndex struct {
	Field string `yaml:"field" json:"field"`
	Type  string `yaml:"type" json:"type"`
}

// CollectionDetails summarizes a collection for the info command.
type CollectionDetails struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	PointsCount    uint64 `json:"points_count"`
	IndexedVectors uint64 `json:"indexed_vectors_count"`
	SegmentsCount  uint64 `json:"segments_count"`
	VectorSize     uint64 `json:"vector_size"`
	Distance       string `json:"distance"`
}
