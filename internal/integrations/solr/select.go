package solr

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchParams are the select handler options the get command exposes.
type SearchParams struct {
	Query  string
	Fields string
	Rows   int
	Sort   string
}

// SearchResult is a page of documents from the select handler.
type SearchResult struct {
	NumFound int64
	Docs     []map[string]any
}

// Search runs a query against a collection's select handler.
func (c *Client) Search(ctx context.Context, collection string, p SearchParams) (*SearchResult, error) {
	query := p.Query
	if query == "" {
		query = "*:*"
	}

	params := url.Values{
		"q":  {query},
		"wt": {"json"},
	}
	if p.Fields != "" {
		params.Set("fl", p.Fields)
	}
	if p.Rows > 0 {
		params.Set("rows", strconv.Itoa(p.Rows))
	}
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}

	var resp struct {
		adminResponse
		Response struct {
			NumFound int64            `json:"numFound"`
			Docs     []map[string]any `json:"docs"`
		} `json:"response"`
	}
	if err := c.get(ctx, url.PathEscape(collection)+"/select", params, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.ResponseHeader, resp.Error, "search"); err != nil {
		return nil, err
	}

	return &SearchResult{NumFound: resp.Response.NumFound, Docs: resp.Response.Docs}, nil
}

// IDQuery builds an id:(a OR b) query for a list of document IDs, escaping
// characters Solr treats specially in term position.
func IDQuery(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = escapeTerm(id)
	}
	return "id:(" + strings.Join(escaped, " OR ") + ")"
}

func escapeTerm(term string) string {
	var sb strings.Builder
	for _, r := range term {
		switch r {
		case ':', ' ', '(', ')', '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
