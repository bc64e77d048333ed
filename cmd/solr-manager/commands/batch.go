package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/integrations/solr"
	"github.com/allenday/qdrant-manager/internal/tui"
	"github.com/allenday/qdrant-manager/internal/utils/docs"
)

var (
	batchAddUpdate  string
	batchDeleteDocs bool
	batchIDs        string
	batchIDFile     string
	batchQuery      string
	batchCommit     bool
	batchSize       int
	batchQuiet      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch-load or batch-delete documents",
	Long: `Load documents with --add-update (inline JSON or a path to a JSON file)
or remove them with --delete-docs plus --ids, --id-file or --query.

Documents are sent in pages of --batch-size without intermediate commits;
a single commit follows the final page unless --commit=false. The first
error aborts the operation, leaving earlier pages applied but uncommitted.`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchAddUpdate, "add-update", "", "JSON documents to add or update, inline or a file path")
	batchCmd.Flags().BoolVar(&batchDeleteDocs, "delete-docs", false, "Delete documents selected by --ids, --id-file or --query")
	batchCmd.Flags().StringVar(&batchIDs, "ids", "", "Comma-separated document IDs to delete")
	batchCmd.Flags().StringVar(&batchIDFile, "id-file", "", "File with one document ID per line")
	batchCmd.Flags().StringVar(&batchQuery, "query", "", "Delete every document matching this query")
	batchCmd.Flags().BoolVar(&batchCommit, "commit", true, "Commit after the final page")
	batchCmd.Flags().IntVar(&batchSize, "batch-size", 500, "Documents sent per page")
	batchCmd.Flags().BoolVar(&batchQuiet, "no-progress", false, "Disable the progress display")

	batchCmd.MarkFlagsOneRequired("add-update", "delete-docs")
	batchCmd.MarkFlagsMutuallyExclusive("add-update", "delete-docs")
	batchCmd.MarkFlagsMutuallyExclusive("add-update", "ids")
	batchCmd.MarkFlagsMutuallyExclusive("add-update", "id-file")
	batchCmd.MarkFlagsMutuallyExclusive("add-update", "query")
	batchCmd.MarkFlagsMutuallyExclusive("query", "ids")
	batchCmd.MarkFlagsMutuallyExclusive("query", "id-file")
}

func runBatch(cmd *cobra.Command, args []string) {
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

	if batchAddUpdate != "" {
		runBatchAdd(ctx, client, collection)
		return
	}
	runBatchDelete(ctx, client, collection)
}

func runBatchAdd(ctx context.Context, client *solr.Client, collection string) {
	documents, err := loadDocsArg(batchAddUpdate)
	if err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}
	if len(documents) == 0 {
		log.Println("No documents to send")
		return
	}

	send := func(ch chan<- tui.ProgressMsg) error {
		done := 0
		for _, page := range docs.Chunk(documents, batchSize) {
			if err := client.Add(ctx, collection, page, false); err != nil {
				return fmt.Errorf("after %d documents: %w", done, err)
			}
			done += len(page)
			ch <- tui.ProgressMsg{
				Done:    done,
				Total:   len(documents),
				Message: fmt.Sprintf("Sent %d documents", done),
			}
		}
		if batchCommit {
			if err := client.Commit(ctx, collection); err != nil {
				return fmt.Errorf("committing: %w", err)
			}
		}
		return nil
	}

	if err := runWithProgress(fmt.Sprintf("Loading into %q", collection), len(documents), send); err != nil {
		log.Fatalf("Batch add failed: %v", err)
	}
	log.Printf("Sent %d documents to %q (commit=%t)", len(documents), collection, batchCommit)
}

func runBatchDelete(ctx context.Context, client *solr.Client, collection string) {
	if batchQuery != "" {
		if err := client.DeleteByQuery(ctx, collection, batchQuery, batchCommit); err != nil {
			log.Fatalf("Batch delete failed: %v", err)
		}
		log.Printf("Deleted documents matching %q from %q (commit=%t)", batchQuery, collection, batchCommit)
		return
	}

	ids := docs.SplitIDs(batchIDs)
	if batchIDFile != "" {
		fromFile, err := docs.LoadIDFile(batchIDFile)
		if err != nil {
			log.Fatalf("Failed to read --id-file: %v", err)
		}
		ids = append(ids, fromFile...)
	}
	if len(ids) == 0 {
		log.Fatalf("--delete-docs requires --ids, --id-file or --query")
	}

	remove := func(ch chan<- tui.ProgressMsg) error {
		done := 0
		for _, page := range docs.Chunk(ids, batchSize) {
			if err := client.DeleteByIDs(ctx, collection, page, false); err != nil {
				return fmt.Errorf("after %d documents: %w", done, err)
			}
			done += len(page)
			ch <- tui.ProgressMsg{
				Done:    done,
				Total:   len(ids),
				Message: fmt.Sprintf("Deleted %d documents", done),
			}
		}
		if batchCommit {
			if err := client.Commit(ctx, collection); err != nil {
				return fmt.Errorf("committing: %w", err)
			}
		}
		return nil
	}

	if err := runWithProgress(fmt.Sprintf("Deleting from %q", collection), len(ids), remove); err != nil {
		log.Fatalf("Batch delete failed: %v", err)
	}
	log.Printf("Deleted %d documents from %q (commit=%t)", len(ids), collection, batchCommit)
}

func runWithProgress(title string, total int, fn func(ch chan<- tui.ProgressMsg) error) error {
	if batchQuiet {
		return tui.RunPlain(fn)
	}
	return tui.Run(title, total, fn)
}

// loadDocsArg parses the --add-update argument, reading it from a file when
// the argument names one.
func loadDocsArg(arg string) ([]map[string]any, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		return docs.Parse(string(data))
	}
	return docs.Parse(arg)
}
