package main

import (
	"fmt"
	"strings"

	"github.com/clawome/clawome/internal/config"
	"github.com/spf13/cobra"
)

// newConfigCmd exposes internal/config.Store's overrides layer on the
// command line: get, set, and reset.
func newConfigCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the persisted runtime overrides",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "clawome.yaml", "Path to the runtime overrides file")

	root.AddCommand(newConfigGetCmd(&configPath))
	root.AddCommand(newConfigSetCmd(&configPath))
	root.AddCommand(newConfigResetCmd(&configPath))

	return root
}

func newConfigGetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the effective configuration (defaults with overrides applied)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewStore(*configPath, nil).Get()
			fmt.Fprintf(cmd.OutOrStdout(), "max_nodes: %d\n", cfg.MaxNodes)
			fmt.Fprintf(cmd.OutOrStdout(), "max_depth: %d\n", cfg.MaxDepth)
			fmt.Fprintf(cmd.OutOrStdout(), "lite_text_max: %d\n", cfg.LiteTextMax)
			fmt.Fprintf(cmd.OutOrStdout(), "lite_text_head: %d\n", cfg.LiteTextHead)
			fmt.Fprintf(cmd.OutOrStdout(), "list_truncate_threshold: %d\n", cfg.ListTruncateThreshold)
			fmt.Fprintf(cmd.OutOrStdout(), "list_truncate_head: %d\n", cfg.ListTruncateHead)
			store := config.NewStore(*configPath, nil)
			if disabled := store.DisabledCompressors(); len(disabled) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "disabled_compressors: %s\n", strings.Join(disabled, ","))
			}
			return nil
		},
	}
}

func newConfigSetCmd(configPath *string) *cobra.Command {
	var (
		maxNodes            int
		maxDepth            int
		liteTextMax         int
		liteTextHead        int
		listTruncThreshold  int
		listTruncHead       int
		disabledCompressors string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist one or more runtime overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore(*configPath, nil)
			ov := config.Overrides{}
			if cmd.Flags().Changed("max-nodes") {
				ov.MaxNodes = &maxNodes
			}
			if cmd.Flags().Changed("max-depth") {
				ov.MaxDepth = &maxDepth
			}
			if cmd.Flags().Changed("lite-text-max") {
				ov.LiteTextMax = &liteTextMax
			}
			if cmd.Flags().Changed("lite-text-head") {
				ov.LiteTextHead = &liteTextHead
			}
			if cmd.Flags().Changed("list-truncate-threshold") {
				ov.ListTruncateThreshold = &listTruncThreshold
			}
			if cmd.Flags().Changed("list-truncate-head") {
				ov.ListTruncateHead = &listTruncHead
			}
			if cmd.Flags().Changed("disabled-compressors") {
				ov.DisabledCompressors = strings.Split(disabledCompressors, ",")
			}
			store.Set(ov)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Cap on nodes the walker will emit")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Cap on DOM depth the walker will descend")
	cmd.Flags().IntVar(&liteTextMax, "lite-text-max", 0, "Lite-mode text truncation length")
	cmd.Flags().IntVar(&liteTextHead, "lite-text-head", 0, "Lite-mode text truncation head length")
	cmd.Flags().IntVar(&listTruncThreshold, "list-truncate-threshold", 0, "Long-list truncation threshold")
	cmd.Flags().IntVar(&listTruncHead, "list-truncate-head", 0, "Long-list truncation head count")
	cmd.Flags().StringVar(&disabledCompressors, "disabled-compressors", "", "Comma-separated compressor names to disable")

	return cmd
}

func newConfigResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all overrides back to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.NewStore(*configPath, nil).Reset()
			return nil
		},
	}
}
