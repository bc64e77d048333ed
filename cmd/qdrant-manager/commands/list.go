package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections",
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	conn, err := loadConnection()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := newClient(conn)
	if err != nil {
		log.Fatalf("Failed to init Qdrant: %v", err)
	}
	defer client.Close()

	names, err := client.ListCollections(context.Background())
	if err != nil {
		log.Fatalf("Failed to list collections: %v", err)
	}

	if len(names) == 0 {
		fmt.Println("No collections found")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
