// Package main is the entry point for the solr-manager CLI.
package main

import (
	"os"

	"github.com/allenday/qdrant-manager/cmd/solr-manager/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
