package qdrant

import (
	"context"
	"fmt"
	"strings"
	"time"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// DefaultTimeout bounds each request when the profile does not set one.
const DefaultTimeout = 30 * time.Second

// Client talks to a Qdrant instance over gRPC.
type Client struct {
	conn        *grpc.ClientConn
	collections pb.CollectionsClient
	points      pb.PointsClient
	apiKey      string
	timeout     time.Duration
}

// NewClient connects to Qdrant at url:port. The URL may carry an http:// or
// https:// prefix; TLS is enabled for https and for cloud-looking hosts.
func NewClient(url string, port int, apiKey string, timeout time.Duration) (*Client, error) {
	target := url
	useTLS := false

	if strings.HasPrefix(url, "https://") {
		target = strings.TrimPrefix(url, "https://")
		useTLS = true
	} else if strings.HasPrefix(url, "http://") {
		target = strings.TrimPrefix(url, "http://")
	} else {
		useTLS = strings.Contains(strings.ToLower(url), "cloud") ||
			strings.Contains(strings.ToLower(url), ".qdrant.io")
	}

	if port > 0 && !strings.Contains(target, ":") {
		target = fmt.Sprintf("%s:%d", target, port)
	}

	var opts []grpc.DialOption
	if useTLS {
		opts = []grpc.DialOption{
			grpc.WithTransportCredentials(credentials.NewTLS(nil)),
		}
	} else {
		opts = []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		}
	}

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn:        conn,
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		apiKey:      apiKey,
		timeout:     timeout,
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// ctxWithAuth adds authentication to an existing context with timeout.
func (c *Client) ctxWithAuth(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	if c.apiKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", c.apiKey)
	}
	return ctx, cancel
}
