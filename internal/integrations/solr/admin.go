package solr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const collectionsPath = "admin/collections"

// ErrConfigSetNotFound marks a CREATE rejected because the named configSet
// does not exist on the server.
var ErrConfigSetNotFound = errors.New("configSet not found")

type adminResponse struct {
	ResponseHeader responseHeader `json:"responseHeader"`
	Error          *errorBlock    `json:"error"`
}

// CreateCollection issues a Collections API CREATE.
func (c *Client) CreateCollection(ctx context.Context, name string, numShards, replicationFactor int, configSet string) error {
	params := url.Values{
		"action":                {"CREATE"},
		"name":                  {name},
		"numShards":             {strconv.Itoa(numShards)},
		"replicationFactor":     {strconv.Itoa(replicationFactor)},
		"collection.configName": {configSet},
		"wt":                    {"json"},
	}

	var resp adminResponse
	if err := c.get(ctx, collectionsPath, params, &resp); err != nil {
		return err
	}
	if err := checkEnvelope(resp.ResponseHeader, resp.Error, "create collection "+name); err != nil {
		if resp.Error != nil && isConfigSetError(resp.Error.Msg, configSet) {
			return fmt.Errorf("%w: %q", ErrConfigSetNotFound, configSet)
		}
		return err
	}
	return nil
}

func isConfigSetError(msg, configSet string) bool {
	return strings.Contains(msg, configSet) &&
		(strings.Contains(msg, "Can not find the specified config set") ||
			strings.Contains(msg, "Could not find config set") ||
			strings.Contains(msg, "Could not find configName"))
}

// DeleteCollection issues a Collections API DELETE.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	params := url.Values{
		"action": {"DELETE"},
		"name":   {name},
		"wt":     {"json"},
	}

	var resp adminResponse
	if err := c.get(ctx, collectionsPath, params, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp.ResponseHeader, resp.Error, "delete collection "+name)
}

// ListCollections issues a Collections API LIST and returns the names
// sorted.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	params := url.Values{
		"action": {"LIST"},
		"wt":     {"json"},
	}

	var resp struct {
		adminResponse
		Collections []string `json:"collections"`
	}
	if err := c.get(ctx, collectionsPath, params, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.ResponseHeader, resp.Error, "list collections"); err != nil {
		return nil, err
	}

	sort.Strings(resp.Collections)
	return resp.Collections, nil
}

// CollectionExists checks for a collection via LIST.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := c.ListCollections(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ClusterStatus describes one collection as reported by CLUSTERSTATUS,
// with the cluster's live nodes attached for context.
type ClusterStatus struct {
	Collection map[string]any `json:"collection"`
	LiveNodes  []string       `json:"live_nodes"`
}

// CollectionStatus fetches CLUSTERSTATUS for a single collection.
func (c *Client) CollectionStatus(ctx context.Context, name string) (*ClusterStatus, error) {
	params := url.Values{
		"action":     {"CLUSTERSTATUS"},
		"collection": {name},
		"wt":         {"json"},
	}

	var resp struct {
		adminResponse
		Cluster struct {
			Collections map[string]json.RawMessage `json:"collections"`
			LiveNodes   []string                   `json:"live_nodes"`
		} `json:"cluster"`
	}
	if err := c.get(ctx, collectionsPath, params, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.ResponseHeader, resp.Error, "cluster status for "+name); err != nil {
		return nil, err
	}

	raw, ok := resp.Cluster.Collections[name]
	if !ok {
		available := make([]string, 0, len(resp.Cluster.Collections))
		for n := range resp.Cluster.Collections {
			available = append(available, n)
		}
		sort.Strings(available)
		return nil, fmt.Errorf("collection %q not found in cluster status (available: %s)",
			name, strings.Join(available, ", "))
	}

	status := &ClusterStatus{LiveNodes: resp.Cluster.LiveNodes}
	if err := json.Unmarshal(raw, &status.Collection); err != nil {
		return nil, fmt.Errorf("failed to decode collection status: %w", err)
	}
	return status, nil
}
