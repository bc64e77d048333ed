package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/integrations/qdrant"
	"github.com/allenday/qdrant-manager/internal/tui"
	"github.com/allenday/qdrant-manager/internal/utils/docs"
	"github.com/allenday/qdrant-manager/internal/utils/payload"
)

var (
	batchIDs      string
	batchIDFile   string
	batchFilter   string
	batchLimit    int
	batchAdd      bool
	batchReplace  bool
	batchDelete   bool
	batchDoc      string
	batchSelector string
	batchSize     int
	batchQuiet    bool
)

// batchOp describes a single payload mutation applied to every selected point.
type batchOp struct {
	kind     string // "add", "replace" or "delete"
	selector string
	doc      map[string]any
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch-edit payloads of selected points",
	Long: `Apply a payload mutation to every point matched by --ids, --id-file or
--filter, using one of --add, --replace or --delete.

The mutation targets the payload location named by --selector, a dotted
path such as "metadata.tags". An empty selector (or "/") addresses the
payload root; --replace at the root swaps out the whole payload. Points
are processed in pages of --batch-size, one payload request per page;
the first error aborts the operation.`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchIDs, "ids", "", "Comma-separated point IDs to select")
	batchCmd.Flags().StringVar(&batchIDFile, "id-file", "", "File with one point ID per line")
	batchCmd.Flags().StringVar(&batchFilter, "filter", "", "JSON match filter selecting points")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "Maximum points to select with --filter (0 = all)")

	batchCmd.Flags().BoolVar(&batchAdd, "add", false, "Merge --doc fields into the selector location")
	batchCmd.Flags().BoolVar(&batchReplace, "replace", false, "Replace the selector location with --doc")
	batchCmd.Flags().BoolVar(&batchDelete, "delete", false, "Delete the selector location")
	batchCmd.Flags().StringVar(&batchDoc, "doc", "", "JSON object with the fields to add or replace")
	batchCmd.Flags().StringVar(&batchSelector, "selector", "", "Dotted path inside the payload (empty = root)")

	batchCmd.Flags().IntVar(&batchSize, "batch-size", 100, "Points rewritten per page")
	batchCmd.Flags().BoolVar(&batchQuiet, "no-progress", false, "Disable the progress display")

	batchCmd.MarkFlagsOneRequired("add", "replace", "delete")
	batchCmd.MarkFlagsMutuallyExclusive("add", "replace", "delete")
	batchCmd.MarkFlagsOneRequired("ids", "id-file", "filter")
	batchCmd.MarkFlagsMutuallyExclusive("ids", "filter")
	batchCmd.MarkFlagsMutuallyExclusive("id-file", "filter")
}

func runBatch(cmd *cobra.Command, args []string) {
	op, err := batchOpFromFlags()
	if err != nil {
		log.Fatalf("Invalid batch operation: %v", err)
	}

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

	points, err := selectPoints(ctx, client, collection, selection{
		ids:    batchIDs,
		idFile: batchIDFile,
		filter: batchFilter,
		limit:  batchLimit,
	})
	if err != nil {
		log.Fatalf("Failed to select points: %v", err)
	}
	if len(points) == 0 {
		log.Println("No points matched the selection")
		return
	}

	write := func(ch chan<- tui.ProgressMsg) error {
		done := 0
		for _, page := range docs.Chunk(points, batchSize) {
			if err := applyBatchPage(ctx, client, collection, page, op); err != nil {
				return fmt.Errorf("after %d points: %w", done, err)
			}
			done += len(page)
			ch <- tui.ProgressMsg{
				Done:    done,
				Total:   len(points),
				Message: fmt.Sprintf("Processed %d points", done),
			}
		}
		return nil
	}

	title := fmt.Sprintf("Batch %s on %q", op.kind, collection)
	if batchQuiet {
		err = tui.RunPlain(write)
	} else {
		err = tui.Run(title, len(points), write)
	}
	if err != nil {
		log.Fatalf("Batch operation failed: %v", err)
	}

	log.Printf("Processed %d points in %q", len(points), collection)
}

// applyBatchPage issues the payload request for one page of points. Add and
// delete go to the server as a single page-wide call; replace rewrites each
// point's payload client-side and overwrites it, so vectors stay untouched.
func applyBatchPage(ctx context.Context, client *qdrant.Client, collection string, page []*qdrant.Point, op batchOp) error {
	switch op.kind {
	case "add":
		return client.SetPayload(ctx, collection, pageIDs(page), op.doc, selectorKey(op.selector))
	case "delete":
		return client.DeletePayload(ctx, collection, pageIDs(page), []string{selectorKey(op.selector)})
	case "replace":
		for _, point := range page {
			if err := applyReplace(point.Payload, op.selector, op.doc); err != nil {
				return fmt.Errorf("point %s: %w", point.ID, err)
			}
			if err := client.OverwritePayload(ctx, collection, point.ID, point.Payload); err != nil {
				return fmt.Errorf("writing point %s: %w", point.ID, err)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown batch operation %q", op.kind)
}

func pageIDs(page []*qdrant.Point) []string {
	ids := make([]string, len(page))
	for i, p := range page {
		ids[i] = p.ID
	}
	return ids
}

// selectorKey converts a dot/slash selector into Qdrant's dotted key path.
// Root selectors become the empty key.
func selectorKey(selector string) string {
	selector = strings.TrimPrefix(selector, "/")
	return strings.ReplaceAll(selector, "/", ".")
}

// batchOpFromFlags validates the mutation flags into a batchOp. Exclusivity
// of the operation flags is enforced by cobra before this runs.
func batchOpFromFlags() (batchOp, error) {
	op := batchOp{selector: batchSelector}

	switch {
	case batchAdd:
		op.kind = "add"
	case batchReplace:
		op.kind = "replace"
	case batchDelete:
		op.kind = "delete"
	default:
		return op, fmt.Errorf("one of --add, --replace or --delete is required")
	}

	switch op.kind {
	case "add", "replace":
		if batchDoc == "" {
			return op, fmt.Errorf("--%s requires --doc", op.kind)
		}
		if err := json.Unmarshal([]byte(batchDoc), &op.doc); err != nil {
			return op, fmt.Errorf("parsing --doc: %w", err)
		}
	case "delete":
		if selectorKey(op.selector) == "" {
			return op, fmt.Errorf("--delete requires a non-root --selector")
		}
		if batchDoc != "" {
			return op, fmt.Errorf("--delete does not take --doc")
		}
	}
	return op, nil
}

// applyReplace swaps the value at selector for doc. A root selector ("" or
// "/") replaces the entire payload.
func applyReplace(p map[string]any, selector string, doc map[string]any) error {
	parent, key, ok := payload.Resolve(p, selector, true)
	if !ok {
		return fmt.Errorf("selector %q does not address a field", selector)
	}
	if key == "" {
		for k := range p {
			delete(p, k)
		}
		payload.Merge(p, doc)
		return nil
	}
	parent[key] = doc
	return nil
}

// selection names the point-selection flags shared by batch and get.
type selection struct {
	ids            string
	idFile         string
	filter         string
	limit          int
	includeVectors bool
}

// selectPoints fetches the points addressed by the selection, either by ID
// lookup or by filter scroll. Flag exclusivity is enforced by cobra.
func selectPoints(ctx context.Context, client *qdrant.Client, collection string, sel selection) ([]*qdrant.Point, error) {
	ids, err := selectionIDs(sel.ids, sel.idFile)
	if err != nil {
		return nil, err
	}

	switch {
	case ids != nil:
		points, missing, err := client.Retrieve(ctx, collection, ids, sel.includeVectors)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			log.Printf("Warning: point %s not found, skipping", id)
		}
		return points, nil

	case sel.filter != "":
		filter, err := qdrant.ParseFilter(sel.filter)
		if err != nil {
			return nil, fmt.Errorf("parsing --filter: %w", err)
		}
		return client.Scroll(ctx, collection, filter, sel.includeVectors, sel.limit)

	default:
		return nil, fmt.Errorf("one of --ids, --id-file or --filter is required")
	}
}

// selectionIDs merges the --ids and --id-file flags into one ID list, nil
// when neither is set.
func selectionIDs(rawIDs, idFile string) ([]string, error) {
	if rawIDs == "" && idFile == "" {
		return nil, nil
	}
	ids := docs.SplitIDs(rawIDs)
	if idFile != "" {
		fromFile, err := docs.LoadIDFile(idFile)
		if err != nil {
			return nil, fmt.Errorf("reading --id-file: %w", err)
		}
		ids = append(ids, fromFile...)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no point IDs found in --ids/--id-file")
	}
	return ids, nil
}
