package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/integrations/solr"
	"github.com/allenday/qdrant-manager/internal/utils/docs"
	"github.com/allenday/qdrant-manager/internal/utils/output"
)

var (
	getQuery  string
	getIDs    string
	getIDFile string
	getFields string
	getLimit  int
	getSort   string
	getFormat string
	getOutput string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Query documents and write them as JSON or CSV",
	Long: `Run a query against the target collection and write the matching
documents to stdout or --output. --ids/--id-file build an ID query
instead of --query.`,
	Run: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getQuery, "query", "*:*", "Solr query")
	getCmd.Flags().StringVar(&getIDs, "ids", "", "Comma-separated document IDs to fetch")
	getCmd.Flags().StringVar(&getIDFile, "id-file", "", "File with one document ID per line")
	getCmd.Flags().StringVar(&getFields, "fields", "*", "Comma-separated field list to return")
	getCmd.Flags().IntVar(&getLimit, "limit", 10, "Maximum documents to return")
	getCmd.Flags().StringVar(&getSort, "sort", "", "Sort clause, e.g. \"id asc\"")
	getCmd.Flags().StringVar(&getFormat, "format", output.FormatJSON, "Output format: json or csv")
	getCmd.Flags().StringVar(&getOutput, "output", "", "Write to this file instead of stdout")

	getCmd.MarkFlagsMutuallyExclusive("query", "ids")
	getCmd.MarkFlagsMutuallyExclusive("query", "id-file")
}

func runGet(cmd *cobra.Command, args []string) {
	conn, err := loadConnection()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	collection := requireCollection(conn)

	client, err := newClient(conn)
	if err != nil {
		log.Fatalf("Failed to init Solr: %v", err)
	}

	query := getQuery
	if getIDs != "" || getIDFile != "" {
		ids := docs.SplitIDs(getIDs)
		if getIDFile != "" {
			fromFile, err := docs.LoadIDFile(getIDFile)
			if err != nil {
				log.Fatalf("Failed to read --id-file: %v", err)
			}
			ids = append(ids, fromFile...)
		}
		if len(ids) == 0 {
			log.Fatalf("No document IDs found in --ids/--id-file")
		}
		query = solr.IDQuery(ids)
	}

	result, err := client.Search(context.Background(), collection, solr.SearchParams{
		Query:  query,
		Fields: getFields,
		Rows:   getLimit,
		Sort:   getSort,
	})
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	if verbose {
		log.Printf("Query matched %d documents, returning %d", result.NumFound, len(result.Docs))
	}
	if err := output.Write(result.Docs, getFormat, getOutput); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	if getOutput != "" {
		log.Printf("Wrote %d documents to %s", len(result.Docs), getOutput)
	}
}
