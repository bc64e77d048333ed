package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/core/config"
	"github.com/allenday/qdrant-manager/internal/integrations/qdrant"
)

const appName = "qdrant-manager"

const sampleConfig = `default:
  connection:
    url: localhost
    port: 6334
    api_key: ""
    collection: documents
    vector_size: 256
    distance: cosine

production:
  connection:
    url: https://example.cloud.qdrant.io
    port: 6334
    api_key: ${QDRANT_API_KEY}
    collection: documents
    vector_size: 256
    distance: cosine
    indexing_threshold: 20000
    payload_indices:
      - field: category
        type: keyword
`

var (
	cfgFile     string
	profileName string
	verbose     bool

	urlFlag        string
	portFlag       int
	apiKeyFlag     string
	collectionFlag string
	timeoutFlag    int
)

// connection holds the per-profile settings the CLI needs to reach a
// Qdrant instance and describe its target collection.
type connection struct {
	URL               string                `yaml:"url"`
	Port              int                   `yaml:"port"`
	APIKey            string                `yaml:"api_key"`
	Collection        string                `yaml:"collection"`
	VectorSize        uint64                `yaml:"vector_size"`
	Distance          string                `yaml:"distance"`
	IndexingThreshold uint64                `yaml:"indexing_threshold"`
	PayloadIndices    []qdrant.PayloadIndex `yaml:"payload_indices"`
	Timeout           int                   `yaml:"timeout"`
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Manage collections and payloads in a Qdrant vector database",
	Long: `qdrant-manager administers Qdrant collections: create and delete them,
inspect their status, batch-edit point payloads and export documents.

Connection settings come from a profile in the config file; every setting
can be overridden per invocation with a flag.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: "+appName+" config dir)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Config profile to use (default: \"default\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Qdrant host or URL (overrides profile)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Qdrant gRPC port (overrides profile)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Qdrant API key (overrides profile)")
	rootCmd.PersistentFlags().StringVar(&collectionFlag, "collection", "", "Target collection (overrides profile)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Request timeout in seconds (overrides profile)")
}

// loadConnection resolves the active profile and applies flag overrides.
func loadConnection() (*connection, error) {
	path, err := config.FindPath(appName, cfgFile)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); cfgFile == "" && statErr != nil {
		created := false
		path, created, err = config.EnsureDefault(appName, sampleConfig)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("Created default config at %s", path)
			log.Printf("Edit it with your connection details; continuing with the %q profile for now", config.DefaultProfile)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return nil, err
	}

	conn := &connection{Port: 6334}
	if err := profile.Connection(conn); err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("url") {
		conn.URL = urlFlag
	}
	if flags.Changed("port") {
		conn.Port = portFlag
	}
	if flags.Changed("api-key") {
		conn.APIKey = apiKeyFlag
	}
	if flags.Changed("collection") {
		conn.Collection = collectionFlag
	}
	if flags.Changed("timeout") {
		conn.Timeout = timeoutFlag
	}

	if conn.URL == "" {
		return nil, fmt.Errorf("no Qdrant URL configured (set url in profile %q or pass --url)", profile.Name)
	}
	return conn, nil
}

func (c *connection) timeout() time.Duration {
	if c.Timeout <= 0 {
		return qdrant.DefaultTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// newClient dials Qdrant using the resolved connection settings.
func newClient(conn *connection) (*qdrant.Client, error) {
	client, err := qdrant.NewClient(conn.URL, conn.Port, conn.APIKey, conn.timeout())
	if err != nil {
		return nil, fmt.Errorf("connecting to Qdrant at %s: %w", conn.URL, err)
	}
	return client, nil
}

// requireCollection returns the target collection or exits with guidance.
func requireCollection(conn *connection) string {
	if conn.Collection == "" {
		log.Fatalf("No collection specified (set collection in the profile or pass --collection)")
	}
	return conn.Collection
}
