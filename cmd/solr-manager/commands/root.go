package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/core/config"
	"github.com/allenday/qdrant-manager/internal/integrations/solr"
	"github.com/allenday/qdrant-manager/internal/integrations/zookeeper"
)

const appName = "solr-manager"

const sampleConfig = `default:
  connection:
    solr_url: http://localhost:8983/solr
    zk_hosts: ""
    username: ""
    password: ""
    collection: documents

production:
  connection:
    solr_url: ""
    zk_hosts: zk1:2181,zk2:2181,zk3:2181/solr
    username: admin
    password: ${SOLR_PASSWORD}
    collection: documents
    timeout: 60
`

var (
	cfgFile     string
	profileName string
	verbose     bool

	solrURLFlag    string
	zkHostsFlag    string
	usernameFlag   string
	passwordFlag   string
	collectionFlag string
	timeoutFlag    int
)

// connection holds the per-profile settings for reaching a SolrCloud
// cluster, either directly or through ZooKeeper discovery.
type connection struct {
	SolrURL    string `yaml:"solr_url"`
	ZKHosts    string `yaml:"zk_hosts"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Collection string `yaml:"collection"`
	Timeout    int    `yaml:"timeout"`
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Manage collections and documents in a SolrCloud cluster",
	Long: `solr-manager administers SolrCloud collections: create and delete them,
inspect cluster status, batch-load and batch-delete documents and export
query results.

The Solr base URL comes from the active profile, either directly via
solr_url or discovered from the live nodes registered in ZooKeeper.`,
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

	rootCmd.PersistentFlags().StringVar(&solrURLFlag, "solr-url", "", "Solr base URL (overrides profile)")
	rootCmd.PersistentFlags().StringVar(&zkHostsFlag, "zk-hosts", "", "ZooKeeper connection string (overrides profile)")
	rootCmd.PersistentFlags().StringVar(&usernameFlag, "username", "", "Basic auth username (overrides profile)")
	rootCmd.PersistentFlags().StringVar(&passwordFlag, "password", "", "Basic auth password (overrides profile)")
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

	conn := &connection{}
	if err := profile.Connection(conn); err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("solr-url") {
		conn.SolrURL = solrURLFlag
	}
	if flags.Changed("zk-hosts") {
		conn.ZKHosts = zkHostsFlag
	}
	if flags.Changed("username") {
		conn.Username = usernameFlag
	}
	if flags.Changed("password") {
		conn.Password = passwordFlag
	}
	if flags.Changed("collection") {
		conn.Collection = collectionFlag
	}
	if flags.Changed("timeout") {
		conn.Timeout = timeoutFlag
	}
	return conn, nil
}

func (c *connection) timeout() time.Duration {
	if c.Timeout <= 0 {
		return solr.DefaultTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// newClient builds a Solr client, resolving the base URL through ZooKeeper
// when the profile does not name one directly.
func newClient(conn *connection) (*solr.Client, error) {
	baseURL := conn.SolrURL
	if baseURL == "" {
		if conn.ZKHosts == "" {
			return nil, fmt.Errorf("no Solr URL configured (set solr_url or zk_hosts in the profile, or pass --solr-url/--zk-hosts)")
		}
		discovered, err := zookeeper.DiscoverSolrURL(conn.ZKHosts, conn.timeout())
		if err != nil {
			return nil, fmt.Errorf("discovering Solr via ZooKeeper: %w", err)
		}
		baseURL = discovered
		if verbose {
			log.Printf("Discovered Solr node %s", baseURL)
		}
	}
	return solr.NewClient(baseURL, conn.Username, conn.Password, conn.timeout()), nil
}

// requireCollection returns the target collection or exits with guidance.
func requireCollection(conn *connection) string {
	if conn.Collection == "" {
		log.Fatalf("No collection specified (set collection in the profile or pass --collection)")
	}
	return conn.Collection
}
