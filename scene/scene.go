// Loading scenes for the visibility package from files.
//
// A scene is a viewpoint and a set of obstacle polygons. Three formats are
// understood:
//
// SVG: the first <circle> is the viewpoint (cx, cy), and every <polygon> is an
// obstacle. A polygon with class="hidden" is not visible. Coordinates are used
// as they are, so the picture comes out flipped vertically.
//
// YAML:
//
//	viewpoint: [50, 50]
//	polygons:
//	  - points: [[100, 100], [200, 100], [200, 200], [100, 200]]
//	  - points: [[300, 10], [320, 10]]
//	    visible: false
//
// Text: blank line separated paragraphs of "x y" lines. The first paragraph
// is the viewpoint, each later one a polygon. A paragraph starting with a line
// reading "hidden" is a polygon that is not visible. Lines starting with # are
// ignored.
package scene

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/osuushi/visibility"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatSVG  Format = "svg"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

type Scene struct {
	Viewpoint *visibility.Point
	Polygons  []*visibility.Polygon
}

// What the parsers produce, before any polygon is built
type rawPolygon struct {
	points  [][2]float64
	visible bool
}

// Pick a format from a file extension. Anything unrecognized is text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

func Load(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening scene")
	}
	defer file.Close()

	scene, err := Read(file, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return scene, nil
}

func Read(r io.Reader, format Format) (*Scene, error) {
	var (
		viewpoint [2]float64
		polygons  []rawPolygon
		err       error
	)
	switch format {
	case FormatSVG:
		viewpoint, polygons, err = parseSVG(r)
	case FormatYAML:
		viewpoint, polygons, err = parseYAML(r)
	case FormatText:
		viewpoint, polygons, err = parseText(r)
	default:
		return nil, errors.Errorf("unknown scene format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return build(viewpoint, polygons)
}

func build(viewpoint [2]float64, raw []rawPolygon) (*Scene, error) {
	scene := &Scene{
		Viewpoint: &visibility.Point{X: viewpoint[0], Y: viewpoint[1]},
		Polygons:  make([]*visibility.Polygon, 0, len(raw)),
	}
	for i, r := range raw {
		points := make([]*visibility.Point, len(r.points))
		for j, p := range r.points {
			points[j] = &visibility.Point{X: p[0], Y: p[1]}
		}
		polygon, err := visibility.NewPolygon(points, r.visible)
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		scene.Polygons = append(scene.Polygons, polygon)
	}
	return scene, nil
}

// Check that the scene is usable by visibility.Compute.
func (s *Scene) Validate() error {
	return visibility.Validate(s.Viewpoint, s.Polygons)
}

func (s *Scene) Compute(borderMode bool) ([]visibility.Edge, error) {
	return visibility.Compute(s.Viewpoint, s.Polygons, borderMode)
}
