// Package zookeeper resolves Solr base URLs from a SolrCloud ensemble.
package zookeeper

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

const liveNodesPath = "/live_nodes"

// ParseHosts splits a ZooKeeper connection string into server addresses and
// an optional chroot. SolrCloud conventionally appends the chroot to the last
// host, e.g. "zk1:2181,zk2:2181/solr".
func ParseHosts(hosts string) (servers []string, chroot string, err error) {
	hosts = strings.TrimSpace(hosts)
	if hosts == "" {
		return nil, "", fmt.Errorf("empty zookeeper host string")
	}
	if idx := strings.Index(hosts, "/"); idx >= 0 {
		chroot = strings.TrimRight(hosts[idx:], "/")
		hosts = hosts[:idx]
	}
	for _, h := range strings.Split(hosts, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			servers = append(servers, h)
		}
	}
	if len(servers) == 0 {
		return nil, "", fmt.Errorf("no zookeeper servers in %q", hosts)
	}
	return servers, chroot, nil
}

// ParseLiveNode converts a live_nodes entry such as "10.0.0.1:8983_solr"
// into a base URL like "http://10.0.0.1:8983/solr".
func ParseLiveNode(name string) (string, error) {
	hostPort, context, found := strings.Cut(name, "_")
	if !found || hostPort == "" || context == "" {
		return "", fmt.Errorf("unrecognized live node name %q", name)
	}
	if !strings.Contains(hostPort, ":") {
		return "", fmt.Errorf("live node %q has no port", name)
	}
	context = strings.ReplaceAll(context, "_", "/")
	return fmt.Sprintf("http://%s/%s", hostPort, context), nil
}

// DiscoverSolrURL connects to the ensemble, lists the live Solr nodes and
// returns the base URL of a randomly chosen one.
func DiscoverSolrURL(hosts string, timeout time.Duration) (string, error) {
	servers, chroot, err := ParseHosts(hosts)
	if err != nil {
		return "", err
	}

	conn, _, err := zk.Connect(servers, timeout, zk.WithLogInfo(false))
	if err != nil {
		return "", fmt.Errorf("connecting to zookeeper %q: %w", hosts, err)
	}
	defer conn.Close()

	children, _, err := conn.Children(chroot + liveNodesPath)
	if err != nil {
		return "", fmt.Errorf("listing %s%s: %w", chroot, liveNodesPath, err)
	}
	if len(children) == 0 {
		return "", fmt.Errorf("no live solr nodes registered under %s%s", chroot, liveNodesPath)
	}

	var urls []string
	for _, child := range children {
		url, err := ParseLiveNode(child)
		if err != nil {
			continue
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("no parseable live nodes among %v", children)
	}
	return urls[rand.Intn(len(urls))], nil
}
