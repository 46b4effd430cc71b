// Package main provides the entry point for the pipeline-chat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
