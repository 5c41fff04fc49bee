package main

import (
	"context"
	"fmt"
	"time"

	"github.com/clawome/clawome/internal/agent"
	"github.com/clawome/clawome/internal/browser"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/record"
	"github.com/spf13/cobra"
)

func newAgentCmd() *cobra.Command {
	var (
		headless      bool
		profile       string
		configPath    string
		providerName  string
		model         string
		maxIterations int
		outputGIF     string
	)

	cmd := &cobra.Command{
		Use:   "agent <url> <prompt>",
		Short: "Drive an LLM agent against a page through the hid-addressed action layer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, prompt := args[0], args[1]

			store := config.NewStore(configPath, nil)
			cfg := store.Get()

			provider, err := agent.NewProvider(providerName, model)
			if err != nil {
				return fmt.Errorf("provider: %w", err)
			}

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

			opts := agent.DefaultOptions()
			opts.MaxIterations = maxIterations
			opts.OnStep = func(format string, a ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
			}

			if outputGIF != "" {
				runOpts := record.DefaultRunOptions(outputGIF)
				runOpts.Agent = opts
				steps, size, err := record.Run(ctx, cfg, page, provider, prompt, runOpts)
				printSteps(cmd, steps)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", outputGIF, size)
				return nil
			}

			steps, err := agent.Run(ctx, cfg, page, provider, prompt, opts)
			printSteps(cmd, steps)
			return err
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().StringVar(&profile, "profile", "", "Chrome/Chromium profile directory for authenticated sessions")
	cmd.Flags().StringVar(&configPath, "config", "clawome.yaml", "Path to the runtime overrides file")
	cmd.Flags().StringVar(&providerName, "provider", "claude", "LLM provider: claude or openai")
	cmd.Flags().StringVar(&model, "model", "", "Model name override for the chosen provider")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", agent.DefaultOptions().MaxIterations, "Checkpoint re-extract ceiling before the loop gives up")
	cmd.Flags().StringVar(&outputGIF, "record", "", "Record the run as a cursor-overlay GIF at this path")

	return cmd
}

func printSteps(cmd *cobra.Command, steps []agent.StepLog) {
	for i, s := range steps {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, s.Result.Description)
		if s.Diff != nil && s.Diff.HasChanges {
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", s.Diff.Summary)
		}
	}
}
