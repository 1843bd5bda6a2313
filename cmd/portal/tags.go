package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag maintenance",
}

var tagsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete tags no content uses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		n, err := client.CleanupUnusedTags(cmd.Context())
		if err != nil {
			return fmt.Errorf("cleanup tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d unused tags\n", n)
		return nil
	},
}

var tagsRecountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute tag usage counts from associations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		n, err := client.RecountTagUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("recount tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated usage count of %d tags\n", n)
		return nil
	},
}

func init() {
	tagsCmd.AddCommand(tagsCleanupCmd, tagsRecountCmd)
	rootCmd.AddCommand(tagsCmd)
}
