package internal

import (
	"embed"
	"log"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures into scenes. This is not a full (or even
// correct) svg parser. The first circle is the viewpoint, and every polygon is
// an obstacle, hidden if its class says so. If anything goes wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

type testScene struct {
	Viewpoint *Point
	Polygons  []*Polygon
}

func LoadFixture(name string) *testScene {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, false)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	circles := rootEl.FindAll("circle")
	if len(circles) == 0 {
		log.Fatalf("No viewpoint circle in fixture %q", name)
	}
	scene := &testScene{
		Viewpoint: &Point{
			X: parseFixtureFloat(circles[0].Attributes["cx"]),
			Y: parseFixtureFloat(circles[0].Attributes["cy"]),
		},
	}

	for _, polygonEl := range rootEl.FindAll("polygon") {
		var points []*Point
		for _, pointString := range strings.Fields(polygonEl.Attributes["points"]) {
			pointStrings := strings.Split(pointString, ",")
			if len(pointStrings) != 2 {
				log.Fatalf("Invalid point string %q", pointString)
			}
			points = append(points, &Point{
				X: parseFixtureFloat(pointStrings[0]),
				Y: parseFixtureFloat(pointStrings[1]),
			})
		}
		visible := !strings.Contains(polygonEl.Attributes["class"], "hidden")
		scene.Polygons = append(scene.Polygons, mustPolygon(points, visible))
	}
	return scene
}

func parseFixtureFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("Invalid number %q: %v", s, err)
	}
	return f
}

func mustPolygon(points []*Point, visible bool) *Polygon {
	poly, err := NewPolygon(points, visible)
	if err != nil {
		log.Fatalf("Invalid fixture polygon: %v", err)
	}
	return poly
}

func rect(x, y, width, height float64) *Polygon {
	return box(x, y, width, height, true)
}

func box(x, y, width, height float64, visible bool) *Polygon {
	return mustPolygon([]*Point{
		{X: x, Y: y},
		{X: x + width, Y: y},
		{X: x + width, Y: y + height},
		{X: x, Y: y + height},
	}, visible)
}

func wall(x1, y1, x2, y2 float64, visible bool) *Polygon {
	return mustPolygon([]*Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, visible)
}

// Some ad hoc code specified fixtures

// One square, seen from below left
func SquareScene() *testScene {
	return &testScene{
		Viewpoint: &Point{X: 50, Y: 50},
		Polygons:  []*Polygon{rect(100, 100, 100, 100)},
	}
}

// Nothing but the bound
func EmptyScene() *testScene {
	return &testScene{Viewpoint: &Point{X: 50, Y: 50}}
}

// Two squares in a row, the far one entirely hidden by the near one
func HiddenSquareScene() *testScene {
	return &testScene{
		Viewpoint: &Point{X: 50, Y: 150},
		Polygons: []*Polygon{
			rect(100, 100, 50, 100),
			rect(250, 100, 50, 100),
		},
	}
}

// A side of the first square lies along a sweep ray, which is also where the
// initial ray would go, and a triangle opens exactly where the square closes.
func CollinearScene() *testScene {
	return &testScene{
		Viewpoint: &Point{X: 0, Y: 0},
		Polygons: []*Polygon{
			rect(10, 0, 10, 10),
			mustPolygon([]*Point{{X: 30, Y: 30}, {X: 40, Y: 45}, {X: 25, Y: 40}}, true),
		},
	}
}

// A five pointed star, which hides parts of itself
func StarScene() *testScene {
	var points []*Point
	const outerRadius = 10
	const innerRadius = 4
	for i := 0; i < 10; i++ {
		radius := float64(outerRadius)
		if i%2 == 1 {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, &Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return &testScene{
		Viewpoint: &Point{X: 17, Y: 3.5},
		Polygons:  []*Polygon{mustPolygon(points, true)},
	}
}

// Squares all around the viewpoint, with a hidden one in the mix
func RingScene() *testScene {
	scene := &testScene{Viewpoint: &Point{X: 0, Y: 0}}
	for i := 0; i < 8; i++ {
		angle := 2 * math.Pi * float64(i) / 8
		scene.Polygons = append(scene.Polygons, box(50*math.Cos(angle)-5, 50*math.Sin(angle)-5, 10, 10, i != 3))
	}
	return scene
}

// Two point polygons
func WallScene() *testScene {
	return &testScene{
		Viewpoint: &Point{X: 0, Y: 0},
		Polygons: []*Polygon{
			wall(10, -10, 10, 10, true),
			wall(20, 5, 30, 15, true),
			wall(-15, -5, -15, 20, true),
			wall(-5, -30, 25, -30, false),
		},
	}
}

// A grid of randomly rotated triangles, one per cell, with the middle cell
// left empty for the viewpoint
func TriangleField(seed int64, viewpoint *Point) *testScene {
	rng := rand.New(rand.NewSource(seed))
	scene := &testScene{Viewpoint: viewpoint}
	const cellSize = 60
	const radius = 20
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if row == 2 && col == 2 {
				continue
			}
			centerX := cellSize/2 + float64(col*cellSize)
			centerY := cellSize/2 + float64(row*cellSize)
			base := rng.Float64() * 2 * math.Pi
			var points []*Point
			for k := 0; k < 3; k++ {
				angle := base + float64(k)*2*math.Pi/3 + (rng.Float64()-0.5)*0.8
				points = append(points, &Point{
					X: centerX + radius*math.Cos(angle),
					Y: centerY + radius*math.Sin(angle),
				})
			}
			scene.Polygons = append(scene.Polygons, mustPolygon(points, true))
		}
	}
	return scene
}

// Star shaped polygons scattered at random, some of them hidden, around a
// random viewpoint. Polygons that would come near another one or the
// viewpoint are skipped.
func ScatterScene(seed int64) *testScene {
	rng := rand.New(rand.NewSource(seed))
	const size = 200
	scene := &testScene{Viewpoint: NewPoint(rng.Float64()*size, rng.Float64()*size)}

	type disc struct{ x, y, radius float64 }
	taken := []disc{{scene.Viewpoint.X, scene.Viewpoint.Y, 1}}
	for attempt := 0; attempt < 40 && len(scene.Polygons) < 12; attempt++ {
		d := disc{rng.Float64() * size, rng.Float64() * size, 5 + rng.Float64()*20}
		clear := true
		for _, other := range taken {
			if math.Hypot(d.x-other.x, d.y-other.y) <= d.radius+other.radius+1 {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		taken = append(taken, d)

		// Sorted angles around the center keep the polygon simple; uneven
		// radii make it concave
		count := 3 + rng.Intn(6)
		angles := make([]float64, count)
		for i := range angles {
			angles[i] = rng.Float64() * 2 * math.Pi
		}
		sort.Float64s(angles)
		points := make([]*Point, count)
		for i, angle := range angles {
			radius := d.radius * (0.4 + 0.6*rng.Float64())
			points[i] = NewPoint(d.x+radius*math.Cos(angle), d.y+radius*math.Sin(angle))
		}
		scene.Polygons = append(scene.Polygons, mustPolygon(points, rng.Intn(4) != 0))
	}
	return scene
}

// A 5x5 grid of integer boxes, seen from the gap below and left of one of
// them.
func GridScene(row, col int) *testScene {
	scene := &testScene{Viewpoint: NewPoint(float64(10*col)+0.7, float64(10*row)+1.3)}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			scene.Polygons = append(scene.Polygons, rect(float64(10*j+2), float64(10*i+2), 6, 6))
		}
	}
	return scene
}

// The initial ray runs along the x axis through a near square and a far box.
// A wall below the axis hides the far box until just before the sweep comes
// back around, so the first thing it uncovers is the piece of the far box's
// side that the initial ray cut off.
func WrapScene() *testScene {
	return &testScene{
		Viewpoint: NewPoint(0, 0),
		Polygons: []*Polygon{
			mustPolygon([]*Point{NewPoint(10, -1), NewPoint(10, 1), NewPoint(12, 1), NewPoint(12, -1)}, true),
			mustPolygon([]*Point{NewPoint(30, -18), NewPoint(30, 20), NewPoint(40, 20), NewPoint(40, -18)}, true),
			wall(4.33, -2.5, 4.92, -0.87, true),
		},
	}
}
