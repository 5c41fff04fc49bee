// Command clawome extracts a compressed, agent-readable view of a web page,
// optionally drives an LLM agent against it, and can record the agent run
// as a cursor-overlay GIF.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "clawome",
		Short: "Compress a live web page into an agent-readable DOM tree",
	}

	root.AddCommand(newExtractCmd())
	root.AddCommand(newAgentCmd())
	root.AddCommand(newConfigCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
