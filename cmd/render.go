package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/render"
	"github.com/vacmar/portfolio/internal/roadmap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write one roadmap frame as SVG",
	Long: `Projects the roadmap with the given filter and reveal state and
writes it as a standalone SVG document.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("filter", string(roadmap.FilterAll), "all, learning or project")
	renderCmd.Flags().String("reveal", "all", "all or none")
	renderCmd.Flags().Bool("touch", false, "show every label")
	renderCmd.Flags().Bool("grid", true, "draw the background grid")
	renderCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	filterName, _ := cmd.Flags().GetString("filter")
	reveal, _ := cmd.Flags().GetString("reveal")
	touch, _ := cmd.Flags().GetBool("touch")
	grid, _ := cmd.Flags().GetBool("grid")
	output, _ := cmd.Flags().GetString("output")

	f, err := roadmap.ParseFilter(filterName)
	if err != nil {
		return err
	}
	if reveal != "all" && reveal != "none" {
		return fmt.Errorf("--reveal must be all or none, got %q", reveal)
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := content.LoadRoadmap(cmd.Context(), cfg.Content)
	if err != nil {
		return err
	}

	opts := cfg.Roadmap.ViewOptions()
	opts.Touch = touch
	view := roadmap.NewView(store, opts)
	defer view.Unmount()
	view.SetFilter(f)
	if reveal == "all" {
		view.Scroll(roadmap.Rect{Width: roadmap.SurfaceSize, Height: roadmap.SurfaceSize})
	}

	frame := view.Scene()
	write := func(w io.Writer) error {
		return render.WriteSVG(w, frame, render.Options{ID: "roadmap", Grid: grid})
	}
	if output == "" {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeFile(output, write)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// createFile opens render output; tests replace it.
var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }

// writeFile writes to name and reports the close error, which is where a
// failed flush surfaces.
func writeFile(name string, write func(io.Writer) error) error {
	f, err := createFile(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
