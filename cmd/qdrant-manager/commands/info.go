package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show status and vector parameters of the target collection",
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
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

	details, err := client.CollectionInfo(context.Background(), collection)
	if err != nil {
		log.Fatalf("Failed to fetch collection info: %v", err)
	}

	out, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render collection info: %v", err)
	}
	fmt.Println(string(out))
}
