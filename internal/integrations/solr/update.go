package solr

import (
	"context"
	"net/url"
)

func updatePath(collection string) string {
	return url.PathEscape(collection) + "/update"
}

func updateParams(commit bool) url.Values {
	params := url.Values{"wt": {"json"}}
	if commit {
		params.Set("commit", "true")
	}
	return params
}

// Add sends documents to the update handler. Commit is left to the caller
// so batched pages can share a single commit at the end.
func (c *Client) Add(ctx context.Context, collection string, docs []map[string]any, commit bool) error {
	var resp adminResponse
	if err := c.postJSON(ctx, updatePath(collection), updateParams(commit), docs, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp.ResponseHeader, resp.Error, "add documents")
}

// DeleteByIDs removes documents by ID.
func (c *Client) DeleteByIDs(ctx context.Context, collection string, ids []string, commit bool) error {
	body := map[string]any{"delete": ids}

	var resp adminResponse
	if err := c.postJSON(ctx, updatePath(collection), updateParams(commit), body, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp.ResponseHeader, resp.Error, "delete documents by ID")
}

// DeleteByQuery removes every document matching a Solr query.
func (c *Client) DeleteByQuery(ctx context.Context, collection, query string, commit bool) error {
	body := map[string]any{"delete": map[string]any{"query": query}}

	var resp adminResponse
	if err := c.postJSON(ctx, updatePath(collection), updateParams(commit), body, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp.ResponseHeader, resp.Error, "delete documents by query")
}

// Commit issues an explicit commit on the collection.
func (c *Client) Commit(ctx context.Context, collection string) error {
	body := map[string]any{"commit": map[string]any{}}

	var resp adminResponse
	if err := c.postJSON(ctx, updatePath(collection), url.Values{"wt": {"json"}}, body, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp.ResponseHeader, resp.Error, "commit")
}
