package scene

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// This is not a full (or even correct) SVG reader. It takes the first circle
// and every polygon element, wherever they are in the document.
func parseSVG(r io.Reader) (viewpoint [2]float64, polygons []rawPolygon, err error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return viewpoint, nil, errors.Wrap(err, "parsing svg")
	}

	circles := root.FindAll("circle")
	if len(circles) == 0 {
		return viewpoint, nil, errors.New("no circle marking the viewpoint")
	}
	for i, name := range []string{"cx", "cy"} {
		viewpoint[i], err = strconv.ParseFloat(circles[0].Attributes[name], 64)
		if err != nil {
			return viewpoint, nil, errors.Wrapf(err, "invalid viewpoint %s", name)
		}
	}

	for i, el := range root.FindAll("polygon") {
		points, err := parsePointList(el.Attributes["points"])
		if err != nil {
			return viewpoint, nil, errors.Wrapf(err, "polygon %d", i)
		}
		polygons = append(polygons, rawPolygon{
			points:  points,
			visible: !hasClass(el.Attributes["class"], "hidden"),
		})
	}
	return viewpoint, polygons, nil
}

// Parse an SVG points attribute: "x,y x,y ...". Commas and whitespace are
// interchangeable, as the SVG grammar allows.
func parsePointList(s string) ([][2]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}
	points := make([][2]float64, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, [2]float64{x, y})
	}
	return points, nil
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}
