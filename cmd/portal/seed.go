package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo content into the store",
	Long: `Load a small set of published demo items.

Items whose slug already exists are skipped, so the command can be re-run.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

var demoContent = []portal.Draft{
	{
		Slug:     "getting-started-with-go",
		Title:    "Getting Started with Go",
		Body:     "# Getting Started with Go\n\nGo is a small language with a fast compiler.\n\n## Install\n\n- Download the toolchain\n- Set up your editor\n\nWrite your first program and run it.",
		Category: portal.CategoryTech,
		Tags:     []string{"go", "tutorial"},
		Featured: true,
	},
	{
		Slug:     "go-concurrency-patterns",
		Title:    "Go Concurrency Patterns",
		Body:     "## Goroutines and channels\n\nPipelines, fan-out and worker pools are the everyday tools of concurrent Go code.",
		Category: portal.CategoryCode,
		Tags:     []string{"go", "concurrency"},
	},
	{
		Slug:     "weekend-sourdough",
		Title:    "Weekend Sourdough",
		Body:     "Feeding a starter on Friday gives a loaf by Sunday morning. Patience is the only ingredient you cannot buy.",
		Category: portal.CategoryLife,
		Tags:     []string{"baking"},
	},
	{
		Slug:     "city-at-dawn",
		Title:    "城市的清晨",
		Body:     "清晨的城市很安静。街道上只有早起的人和刚开门的早餐店。",
		Category: portal.CategoryObservation,
		Tags:     []string{"城市", "生活"},
	},
	{
		Slug:     "short-poem-on-rain",
		Title:    "A Short Poem on Rain",
		Body:     "Rain on the window,\nletters nobody will send,\nthe kettle whistles.",
		Category: portal.CategoryCreative,
		Tags:     []string{"poetry"},
	},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	client, err := openClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	created, skipped := 0, 0
	for _, d := range demoContent {
		d.Published = true
		saved, err := client.SaveContent(cmd.Context(), d)
		if errors.Is(err, portal.ErrSlugTaken) {
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %q: %w", d.Slug, err)
		}
		created++
		logger.Debug("seeded item",
			zap.Int64("id", saved.Item.ID()),
			zap.String("slug", saved.Item.Slug()),
			zap.Int("seo_score", saved.SEO.Score),
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items (%d already present)\n", created, skipped)
	return nil
}
