package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacmar/portfolio/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage roadmap content sources",
}

var contentExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roadmap to SQLite or YAML",
	Long: `Reads a roadmap source (the embedded roadmap, a YAML file or a SQLite
database) and writes it to a SQLite database usable as the content
setting, or prints it as sanitised YAML.`,
	Example: `  portfolio content export --sqlite roadmap.db
  portfolio content export --from roadmap.yaml --sqlite roadmap.db
  portfolio content export --yaml > roadmap.yaml`,
	Args: cobra.NoArgs,
	RunE: runContentExport,
}

func init() {
	contentExportCmd.Flags().String("from", "", "source to read (default embedded)")
	contentExportCmd.Flags().String("sqlite", "", "SQLite database to write")
	contentExportCmd.Flags().Bool("yaml", false, "print the roadmap as YAML")
	contentCmd.AddCommand(contentExportCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentExport(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	dbPath, _ := cmd.Flags().GetString("sqlite")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if dbPath == "" && !asYAML {
		return errors.New("nothing to export: pass --sqlite or --yaml")
	}

	store, err := content.LoadRoadmap(cmd.Context(), from)
	if err != nil {
		return err
	}
	nodes := store.Nodes()

	if dbPath != "" {
		if err := content.WriteSQLite(cmd.Context(), dbPath, nodes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d roadmap nodes to %s\n", len(nodes), dbPath)
	}
	if asYAML {
		data, err := content.MarshalRoadmapYAML(nodes)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}
