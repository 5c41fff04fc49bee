package main

import (
	"context"
	"fmt"
	"time"

	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/compress/scripts"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/pipeline"
	"github.com/clawome/clawome/internal/render"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		lite       bool
		headless   bool
		profile    string
		configPath string
		siteScript string
	)

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Navigate to a URL and print the compressed agent-readable tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]

			store := config.NewStore(configPath, nil)
			cfg := store.Get()

			page, err := browser.Launch(browser.Options{
				Width: 1440, Height: 900,
				NavTimeout: 30 * time.Second, SettleTimeout: 5 * time.Second,
				Headless: headless, ProfileDir: profile,
			})
			if err != nil {
				return fmt.Errorf("launch browser: %w", err)
			}
			defer page.Close()

			ctx := context.Background()
			if err := page.Navigate(ctx, url); err != nil {
				return fmt.Errorf("navigate: %w", err)
			}

			script := resolveScript(url, siteScript, store.DisabledCompressors())

			var result render.Result
			var stats render.Stats
			if script != nil {
				result, stats, _, err = pipeline.ExtractWithScript(ctx, cfg, page, lite, script, nil)
			} else {
				result, stats, _, err = pipeline.Extract(ctx, cfg, page, lite)
			}
			if err != nil {
				return err
			}

			fmt.Println(result.Rendered)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d nodes -> %d nodes, %d chars rendered, ratio %.2f, ~%d tokens\n",
				stats.NodesBeforeCount, stats.NodesAfterCount, stats.RenderedChars, stats.CompressionRatio, stats.TokensReal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&lite, "lite", false, "Truncate non-interactive text for a smaller tree")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().StringVar(&profile, "profile", "", "Chrome/Chromium profile directory for authenticated sessions")
	cmd.Flags().StringVar(&configPath, "config", "clawome.yaml", "Path to the runtime overrides file")
	cmd.Flags().StringVar(&siteScript, "script", "", "Force a specific per-site compressor by ID instead of URL matching")

	return cmd
}

// resolveScript honors an explicit --script id first, refusing one that's
// been disabled via `clawome config set --disabled-compressors=...`, otherwise
// falls back to the registry's URL-pattern matching (which also skips
// disabled scripts), returning nil for the generic pipeline.
func resolveScript(url, forceID string, disabled []string) *scripts.Script {
	isDisabled := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		isDisabled[id] = true
	}

	if forceID != "" {
		if isDisabled[forceID] {
			return nil
		}
		for _, s := range scripts.All() {
			if s.ID == forceID {
				return s
			}
		}
		return nil
	}

	r := scripts.NewRegistry()
	for id := range isDisabled {
		r.Disable(id)
	}
	if s := r.Match(url); s != nil && s.ID != "default" {
		return s
	}
	return nil
}
