package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	slugMaxLength int
	slugNoPinyin  bool
	slugDate      bool
	slugCount     int
)

var slugCmd = &cobra.Command{
	Use:   "slug",
	Short: "URL slug tools",
}

var slugGenerateCmd = &cobra.Command{
	Use:   "generate <title>...",
	Short: "Generate slugs for one or more titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		opts := client.DefaultSlugOptions()
		if slugMaxLength > 0 {
			opts.MaxLength = slugMaxLength
		}
		if slugNoPinyin {
			opts.UsePinyin = false
		}
		opts.IncludeDate = slugDate

		for _, e := range client.GenerateSlugs(args, opts) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Slug, e.Title)
		}
		return nil
	},
}

var slugAnalyzeCmd = &cobra.Command{
	Use:   "analyze <slug>",
	Short: "Score the quality of a slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		r := client.AnalyzeSlug(args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d (%s)\n", r.Slug, r.Score, r.Grade)
		printList(out, "Issues", r.Issues)
		printList(out, "Recommendations", r.Recommendations)
		return nil
	},
}

var slugVariationsCmd = &cobra.Command{
	Use:   "variations <title>",
	Short: "Suggest alternative slugs for a title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		title := strings.Join(args, " ")
		for _, v := range client.SlugVariations(title, slugCount) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", v.Kind, v.Slug)
		}
		return nil
	},
}

func init() {
	slugGenerateCmd.Flags().IntVar(&slugMaxLength, "max-length", 0, "maximum slug length (default from config)")
	slugGenerateCmd.Flags().BoolVar(&slugNoPinyin, "no-pinyin", false, "drop Chinese characters instead of transliterating")
	slugGenerateCmd.Flags().BoolVar(&slugDate, "date", false, "prefix the slug with today's date")
	slugVariationsCmd.Flags().IntVarP(&slugCount, "count", "n", 5, "number of variations")

	slugCmd.AddCommand(slugGenerateCmd, slugAnalyzeCmd, slugVariationsCmd)
	rootCmd.AddCommand(slugCmd)
}
