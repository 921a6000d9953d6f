package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/tui"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Browse the roadmap in the terminal",
	Long: `Opens the roadmap in an interactive terminal browser.

Keys: 1/2/3 switch tabs, j/k move, enter opens an item, h/l pick a
connection, enter follows it, esc closes, q quits.`,
	Args: cobra.NoArgs,
	RunE: runRoadmap,
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := content.LoadRoadmap(cmd.Context(), cfg.Content)
	if err != nil {
		return err
	}
	return tui.Run(store, cfg.Roadmap.ViewOptions())
}
