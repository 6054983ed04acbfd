package internal

import (
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"golang.org/x/image/font/basicfont"
)

// Padding around the scene, in pixels
const drawPadding = 40

// Draw a scene and the result of Compute: obstacles filled, visible edges in
// green, hidden ones dashed grey, and the viewpoint in yellow. The y axis
// points up.
//
// The returned context keeps the scene transform, so TransformPoint maps scene
// coordinates to pixels.
func Render(viewpoint *Point, polygons []*Polygon, edges []*Edge, scale float64) *gg.Context {
	minX, minY := viewpoint.X, viewpoint.Y
	maxX, maxY := viewpoint.X, viewpoint.Y
	extend := func(p *Point) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, poly := range polygons {
		for _, p := range poly.Points {
			extend(p)
		}
	}
	for _, edge := range edges {
		extend(edge.A)
		extend(edge.B)
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	for _, poly := range polygons {
		drawPolygon(c, poly)
	}

	// Hidden edges first so that visible ones stay on top
	c.SetLineWidth(1)
	c.SetDash(6, 4)
	c.SetRGB(0.6, 0.6, 0.6)
	for _, edge := range edges {
		if !edge.Visible {
			drawEdge(c, edge)
		}
	}
	c.SetDash()
	c.SetLineWidth(3)
	c.SetRGB(0, 1, 0)
	for _, edge := range edges {
		if edge.Visible {
			drawEdge(c, edge)
		}
	}

	c.SetRGB(1, 1, 0)
	c.DrawCircle(viewpoint.X, viewpoint.Y, 4/scale)
	c.Fill()

	// Text goes in native coordinates, or it comes out upside down
	x, y := c.TransformPoint(viewpoint.X, viewpoint.Y)
	c.Push()
	c.Identity()
	c.SetFontFace(basicfont.Face7x13)
	c.DrawStringAnchored(viewpoint.String(), x+8, y-8, 0, 0)
	c.Pop()

	return c
}

func drawPolygon(c *gg.Context, poly *Polygon) {
	for i, p := range poly.Points {
		if i == 0 {
			c.MoveTo(p.X, p.Y)
		} else {
			c.LineTo(p.X, p.Y)
		}
	}
	c.ClosePath()
	if poly.Visible {
		c.SetRGBA(0.3, 0.2, 1, 0.5)
	} else {
		c.SetRGBA(1, 1, 0, 0.2)
	}
	c.Fill()
}

func drawEdge(c *gg.Context, edge *Edge) {
	c.MoveTo(edge.A.X, edge.A.Y)
	c.LineTo(edge.B.X, edge.B.Y)
	c.Stroke()
}

// Print a rendering to the terminal (iTerm only).
func Imgcat(c *gg.Context) error {
	dir, err := os.MkdirTemp("", "visibility")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "visibility.png")
	if err := c.SavePNG(path); err != nil {
		return err
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}
