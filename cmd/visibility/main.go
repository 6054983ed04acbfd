package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/visibility"
	"github.com/osuushi/visibility/internal"
	"github.com/osuushi/visibility/scene"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Compute the visibility polygon of a scene file and print its edges, one per
// line. See package scene for the file formats.
func main() {
	app := kingpin.New("visibility", "Compute the region visible from a viewpoint among polygon obstacles.")
	app.HelpFlag.Short('h')
	var opts options
	opts.register(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(opts, os.Stdout); err != nil {
		app.FatalIfError(err, "")
	}
}

type options struct {
	scenePath string
	border    bool
	validate  bool
	pngPath   string
	imgcat    bool
	scale     float64
	dump      bool
	verbose   bool
	color     bool
}

func (opts *options) register(app *kingpin.Application) {
	app.Arg("scene", "Scene file (.svg, .yaml or text).").Required().ExistingFileVar(&opts.scenePath)
	app.Flag("border", "Also list every edge that contributed nothing.").Envar("VISIBILITY_BORDER").BoolVar(&opts.border)
	app.Flag("validate", "Check the scene before computing.").Default("true").Envar("VISIBILITY_VALIDATE").BoolVar(&opts.validate)
	app.Flag("png", "Render the result to this PNG file.").Envar("VISIBILITY_PNG").StringVar(&opts.pngPath)
	app.Flag("imgcat", "Render the result to the terminal (iTerm only).").Envar("VISIBILITY_IMGCAT").BoolVar(&opts.imgcat)
	app.Flag("scale", "Pixels per scene unit when rendering.").Default("2").Envar("VISIBILITY_SCALE").Float64Var(&opts.scale)
	app.Flag("dump", "Dump the resulting edges in full.").Envar("VISIBILITY_DUMP").BoolVar(&opts.dump)
	app.Flag("verbose", "Log sweep events to stderr.").Short('v').Envar("VISIBILITY_VERBOSE").BoolVar(&opts.verbose)
	app.Flag("color", "Color the output.").Default("true").Envar("VISIBILITY_COLOR").BoolVar(&opts.color)
}

func run(opts options, out io.Writer) error {
	if opts.verbose {
		visibility.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := scene.Load(opts.scenePath)
	if err != nil {
		return err
	}
	if opts.validate {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	edges, err := s.Compute(opts.border)
	if err != nil {
		return err
	}

	printEdges(out, edges, aurora.NewAurora(opts.color))
	if opts.dump {
		dumper := spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true}
		dumper.Fdump(out, edges)
	}

	if opts.pngPath == "" && !opts.imgcat {
		return nil
	}
	edgePointers := make([]*internal.Edge, len(edges))
	for i := range edges {
		edgePointers[i] = &edges[i]
	}
	c := internal.Render(s.Viewpoint, s.Polygons, edgePointers, opts.scale)
	if opts.pngPath != "" {
		if err := c.SavePNG(opts.pngPath); err != nil {
			return err
		}
	}
	if opts.imgcat {
		return internal.Imgcat(c)
	}
	return nil
}

func printEdges(out io.Writer, edges []visibility.Edge, au aurora.Aurora) {
	visibleCount := 0
	for _, edge := range edges {
		if edge.Visible {
			visibleCount++
			fmt.Fprintf(out, "%s %v -> %v\n", au.Green("visible"), edge.A, edge.B)
		} else {
			fmt.Fprintf(out, "%s  %v -> %v\n", au.Red("hidden"), edge.A, edge.B)
		}
	}
	fmt.Fprintf(out, "%s\n", au.Cyan(fmt.Sprintf("%d edges, %d visible", len(edges), visibleCount)))
}
