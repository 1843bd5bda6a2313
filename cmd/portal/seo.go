package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/portal"
)

var (
	seoTitle string
	seoMeta  string
	seoURL   string
	seoJSON  bool
)

var seoCmd = &cobra.Command{
	Use:   "seo",
	Short: "Content quality tools",
}

var seoAnalyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score a markdown document",
	Long: `Score a markdown document for SEO quality.

The body is read from the given file, or from stdin when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSEOAnalyze,
}

func init() {
	seoAnalyzeCmd.Flags().StringVarP(&seoTitle, "title", "t", "", "page title")
	seoAnalyzeCmd.Flags().StringVarP(&seoMeta, "meta", "m", "", "meta description")
	seoAnalyzeCmd.Flags().StringVarP(&seoURL, "url", "u", "", "page URL")
	seoAnalyzeCmd.Flags().BoolVar(&seoJSON, "json", false, "print the full report as JSON")
	seoCmd.AddCommand(seoAnalyzeCmd)
	rootCmd.AddCommand(seoCmd)
}

func runSEOAnalyze(cmd *cobra.Command, args []string) error {
	body, err := readBody(cmd, args)
	if err != nil {
		return err
	}

	client, err := openClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	report := client.AnalyzeContent(body, seoTitle, seoMeta, seoURL)
	out := cmd.OutOrStdout()
	if seoJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printSEOReport(out, report)
	return nil
}

func readBody(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filepath.Clean(args[0]))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func printSEOReport(w io.Writer, r portal.SEOReport) {
	fmt.Fprintf(w, "Score: %d (%s, %s)\n", r.Score, r.Grade, r.Status)
	b := r.Breakdown
	fmt.Fprintf(w, "  title %d  description %d  content %d  keywords %d  readability %d  technical %d\n",
		b.Title, b.Description, b.Content, b.Keywords, b.Readability, b.Technical)
	fmt.Fprintf(w, "Words: %d, reading time: %d min\n", r.WordCount, r.ReadingMinutes)

	if len(r.Keywords) > 0 {
		fmt.Fprintln(w, "Keywords:")
		for _, k := range r.Keywords {
			fmt.Fprintf(w, "  %-20s %3d  %.2f%%\n", k.Word, k.Count, k.Density)
		}
	}
	printList(w, "Issues", r.Issues)
	printList(w, "Recommendations", r.Recommendations)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
