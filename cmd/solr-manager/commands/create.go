package commands

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/integrations/solr"
)

var (
	createNumShards         int
	createReplicationFactor int
	createConfigSet         string
	createOverwrite         bool
)

// deleteSettleDelay gives the cluster time to unregister a dropped
// collection before it is recreated under the same name.
var deleteSettleDelay = 5 * time.Second

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the target collection",
	Long: `Create the target collection from an existing configset. With --overwrite
an existing collection of the same name is deleted first.`,
	Run: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().IntVar(&createNumShards, "num-shards", 1, "Number of shards")
	createCmd.Flags().IntVar(&createReplicationFactor, "replication-factor", 1, "Replicas per shard")
	createCmd.Flags().StringVar(&createConfigSet, "configset", "", "Configset the collection is built from")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Recreate the collection if it already exists")

	if err := createCmd.MarkFlagRequired("configset"); err != nil {
		log.Fatalf("Failed to mark configset flag as required: %v", err)
	}
}

func runCreate(cmd *cobra.Command, args []string) {
	conn, err := loadConnection()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	collection := requireCollection(conn)

	client, err := newClient(conn)
	if err != nil {
		log.Fatalf("Failed to init Solr: %v", err)
	}

	created, err := ensureCollection(context.Background(), client, collection,
		createNumShards, createReplicationFactor, createConfigSet, createOverwrite)
	if err != nil {
		if errors.Is(err, solr.ErrConfigSetNotFound) {
			log.Fatalf("Configset %q does not exist on the cluster; upload it first", createConfigSet)
		}
		log.Fatalf("Failed to create collection: %v", err)
	}
	if !created {
		return
	}

	log.Printf("Created collection %q (shards=%d, replicationFactor=%d, configset=%s)",
		collection, createNumShards, createReplicationFactor, createConfigSet)
}

// ensureCollection creates the collection, recreating it when overwrite is
// set. An existing collection without overwrite is a warning, not an error.
func ensureCollection(ctx context.Context, client *solr.Client, collection string, numShards, replicationFactor int, configSet string, overwrite bool) (bool, error) {
	exists, err := client.CollectionExists(ctx, collection)
	if err != nil {
		return false, err
	}
	if exists {
		if !overwrite {
			log.Printf("Collection %q already exists; use --overwrite to recreate it", collection)
			return false, nil
		}
		log.Printf("Deleting existing collection %q", collection)
		if err := client.DeleteCollection(ctx, collection); err != nil {
			return false, err
		}
		time.Sleep(deleteSettleDelay)
	}

	if err := client.CreateCollection(ctx, collection, numShards, replicationFactor, configSet); err != nil {
		return false, err
	}
	return true, nil
}
