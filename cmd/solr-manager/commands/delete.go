package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the target collection",
	Run:   runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) {
	conn, err := loadConnection()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	collection := requireCollection(conn)

	client, err := newClient(conn)
	if err != nil {
		log.Fatalf("Failed to init Solr: %v", err)
	}

	ctx := context.Background()

	exists, err := client.CollectionExists(ctx, collection)
	if err != nil {
		log.Fatalf("Failed to check collection: %v", err)
	}
	if !exists {
		log.Fatalf("Collection %q does not exist", collection)
	}

	if err := client.DeleteCollection(ctx, collection); err != nil {
		log.Fatalf("Failed to delete collection: %v", err)
	}
	log.Printf("Deleted collection %q", collection)
}
