package scene

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlScene struct {
	Viewpoint []float64     `yaml:"viewpoint"`
	Polygons  []yamlPolygon `yaml:"polygons"`
}

type yamlPolygon struct {
	Points [][]float64 `yaml:"points"`
	// Defaults to true
	Visible *bool `yaml:"visible"`
}

func parseYAML(r io.Reader) (viewpoint [2]float64, polygons []rawPolygon, err error) {
	var doc yamlScene
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return viewpoint, nil, errors.Wrap(err, "parsing yaml")
	}

	if viewpoint, err = pair(doc.Viewpoint); err != nil {
		return viewpoint, nil, errors.Wrap(err, "viewpoint")
	}
	for i, p := range doc.Polygons {
		raw := rawPolygon{visible: p.Visible == nil || *p.Visible}
		for j, coords := range p.Points {
			point, err := pair(coords)
			if err != nil {
				return viewpoint, nil, errors.Wrapf(err, "polygon %d point %d", i, j)
			}
			raw.points = append(raw.points, point)
		}
		polygons = append(polygons, raw)
	}
	return viewpoint, polygons, nil
}

func pair(coords []float64) ([2]float64, error) {
	if len(coords) != 2 {
		return [2]float64{}, errors.Errorf("want [x, y], got %d numbers", len(coords))
	}
	return [2]float64{coords[0], coords[1]}, nil
}
