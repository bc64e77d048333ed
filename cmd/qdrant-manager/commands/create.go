package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/integrations/qdrant"
)

var (
	createVectorSize        uint64
	createDistance          string
	createIndexingThreshold uint64
	createOverwrite         bool
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the target collection",
	Long: `Create the target collection with the vector parameters from the active
profile. Flags override profile values. Payload indices declared in the
profile are created along with the collection.`,
	Run: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().Uint64Var(&createVectorSize, "vector-size", 256, "Vector dimensionality")
	createCmd.Flags().StringVar(&createDistance, "distance", "", "Distance metric: cosine, dot, euclid or manhattan")
	createCmd.Flags().Uint64Var(&createIndexingThreshold, "indexing-threshold", 0, "Optimizer indexing threshold in KB")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Recreate the collection if it already exists")
}

func runCreate(cmd *cobra.Command, args []string) {
	conn, err := loadConnection()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	collection := requireCollection(conn)

	client, err := newClient(conn)
	if err != nil {
		log.Fatalf("Failed to init Qdrant: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	spec := qdrant.CollectionSpec{
		Name:              collection,
		VectorSize:        conn.VectorSize,
		Distance:          conn.Distance,
		IndexingThreshold: conn.IndexingThreshold,
	}
	if cmd.Flags().Changed("vector-size") || spec.VectorSize == 0 {
		spec.VectorSize = createVectorSize
	}
	if cmd.Flags().Changed("distance") {
		spec.Distance = createDistance
	}
	if cmd.Flags().Changed("indexing-threshold") {
		spec.IndexingThreshold = createIndexingThreshold
	}

	created, err := ensureCollection(ctx, client, spec, createOverwrite)
	if err != nil {
		log.Fatalf("Failed to create collection: %v", err)
	}
	if !created {
		return
	}

	for _, index := range conn.PayloadIndices {
		if err := client.CreatePayloadIndex(ctx, collection, index); err != nil {
			log.Fatalf("Failed to create payload index on %q: %v", index.Field, err)
		}
		if verbose {
			log.Printf("Created %s payload index on %q", index.Type, index.Field)
		}
	}

	log.Printf("Created collection %q (size=%d, distance=%s)", collection, spec.VectorSize, spec.Distance)
}

// collectionAdmin is the slice of the Qdrant client that create needs.
type collectionAdmin interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	DeleteCollection(ctx context.Context, name string) error
	CreateCollection(ctx context.Context, spec qdrant.CollectionSpec) error
}

// ensureCollection creates the collection, recreating it when overwrite is
// set. An existing collection without overwrite is a warning, not an error.
func ensureCollection(ctx context.Context, client collectionAdmin, spec qdrant.CollectionSpec, overwrite bool) (bool, error) {
	exists, err := client.CollectionExists(ctx, spec.Name)
	if err != nil {
		return false, fmt.Errorf("checking collection: %w", err)
	}
	if exists {
		if !overwrite {
			log.Printf("Collection %q already exists; use --overwrite to recreate it", spec.Name)
			return false, nil
		}
		log.Printf("Deleting existing collection %q", spec.Name)
		if err := client.DeleteCollection(ctx, spec.Name); err != nil {
			return false, fmt.Errorf("deleting collection: %w", err)
		}
	}

	if err := client.CreateCollection(ctx, spec); err != nil {
		return false, err
	}
	return true, nil
}
