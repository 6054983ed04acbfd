package scene

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func parseText(r io.Reader) (viewpoint [2]float64, polygons []rawPolygon, err error) {
	var paragraphs [][]string
	var current []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// An empty line ends the paragraph, if we collected anything
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return viewpoint, nil, errors.Wrap(err, "reading scene")
	}
	// Handle trailing paragraph if any
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	if len(paragraphs) == 0 {
		return viewpoint, nil, errors.New("empty scene")
	}
	if len(paragraphs[0]) != 1 {
		return viewpoint, nil, errors.Errorf("viewpoint paragraph has %d lines, want 1", len(paragraphs[0]))
	}
	if viewpoint, err = parsePoint(paragraphs[0][0]); err != nil {
		return viewpoint, nil, errors.Wrap(err, "viewpoint")
	}

	for i, lines := range paragraphs[1:] {
		raw := rawPolygon{visible: true}
		if lines[0] == "hidden" {
			raw.visible = false
			lines = lines[1:]
		}
		for _, line := range lines {
			point, err := parsePoint(line)
			if err != nil {
				return viewpoint, nil, errors.Wrapf(err, "polygon %d", i)
			}
			raw.points = append(raw.points, point)
		}
		polygons = append(polygons, raw)
	}
	return viewpoint, polygons, nil
}

func parsePoint(line string) ([2]float64, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return [2]float64{}, errors.Errorf("invalid point %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return [2]float64{}, errors.Wrapf(err, "invalid x value %q", parts[0])
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return [2]float64{}, errors.Wrapf(err, "invalid y value %q", parts[1])
	}
	return [2]float64{x, y}, nil
}
