package commands

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allenday/qdrant-manager/internal/core/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config location and available profiles",
	Run:   runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	dir, err := config.Dir(appName)
	if err != nil {
		log.Fatalf("Failed to resolve config dir: %v", err)
	}

	path, err := config.FindPath(appName, cfgFile)
	if err != nil {
		log.Fatalf("Failed to resolve config file: %v", err)
	}

	profiles, err := config.Profiles(path)
	if err != nil {
		log.Fatalf("Failed to read profiles: %v", err)
	}

	fmt.Printf("Config directory: %s\n", dir)
	fmt.Printf("Config file:      %s\n", path)
	fmt.Printf("Profiles:         %s\n", strings.Join(profiles, ", "))
}
