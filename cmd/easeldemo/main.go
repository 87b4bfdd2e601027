// Command easeldemo paints a small layered composition with the easel
// raster core and writes the flattened result (plus animation frames) as PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/gogpu/easel"
)

func main() {
	var (
		width  = flag.Int("width", 800, "canvas width")
		height = flag.Int("height", 600, "canvas height")
		output = flag.String("output", "demo.png", "output file")
		frames = flag.Int("frames", 0, "animation frames to render (0 disables)")
	)
	flag.Parse()

	doc := easel.NewDocument(*width, *height, easel.WithName("easel demo"))

	paintSky(doc, *width, *height)
	paintHills(doc, *width, *height)
	paintSun(doc, *width)
	inkOutline(doc, *width, *height)

	if err := doc.Flatten().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %d layers)\n",
		*output, *width, *height, doc.Stack().Len())

	if *frames > 1 {
		renderAnimation(doc, *frames, *width)
	}
}

// paintSky lays horizontal marker bands of decreasing saturation on the base
// layer.
func paintSky(doc *easel.Document, w, h int) {
	eng := easel.NewBrushEngine()
	eng.SelectVariant(easel.VariantMarker)
	eng.SetSize(float64(h) / 8)
	eng.SetOpacity(0.6)

	steps := 8
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		eng.SetColor(easel.RGBA{R: 0.3 + t*0.4, G: 0.5 + t*0.3, B: 0.9, A: 1})
		y := float64(h) * t / 2
		doc.ApplyStroke(eng.BuildStroke(line(0, y, float64(w), y)))
	}
}

// paintHills adds two overlapping pressure-tapered hill strokes on their own
// multiply layer.
func paintHills(doc *easel.Document, w, h int) {
	doc.AddLayer("hills", easel.WithBlendMode(easel.BlendMultiply))

	eng := easel.NewBrushEngine()
	eng.SelectVariant(easel.VariantBrush)
	eng.SetSize(float64(h) / 4)
	eng.SetColor(easel.RGBA{R: 0.2, G: 0.6, B: 0.3, A: 1})

	for hill := 0; hill < 2; hill++ {
		var pts []easel.PressurePoint
		baseY := float64(h) * (0.75 + 0.1*float64(hill))
		for i := 0; i <= 20; i++ {
			t := float64(i) / 20
			x := float64(w) * t
			y := baseY - 60*math.Sin(t*math.Pi+float64(hill))
			pts = append(pts, easel.PressurePoint{
				Position: easel.Pt(x, y),
				Pressure: 0.4 + 0.6*math.Sin(t*math.Pi),
			})
		}
		doc.ApplyStroke(eng.BuildStroke(eng.Resample(pts)))
	}
}

// paintSun airbrushes a soft sun on a screen-blended layer.
func paintSun(doc *easel.Document, w int) {
	doc.AddLayer("sun", easel.WithBlendMode(easel.BlendScreen), easel.WithOpacity(0.9))

	eng := easel.NewBrushEngine()
	eng.SelectVariant(easel.VariantAirbrush)
	eng.SetSize(90)
	eng.SetColor(easel.RGBA{R: 1, G: 0.85, B: 0.3, A: 1})

	cx, cy := float64(w)*0.75, 120.0
	var pts []easel.PressurePoint
	for i := 0; i < 12; i++ {
		angle := float64(i) * math.Pi / 6
		pts = append(pts, easel.PressurePoint{
			Position: easel.Pt(cx+20*math.Cos(angle), cy+20*math.Sin(angle)),
			Pressure: 1,
		})
	}
	doc.ApplyStroke(eng.BuildStroke(pts))
}

// inkOutline draws a pen horizon line on the top layer.
func inkOutline(doc *easel.Document, w, h int) {
	doc.AddLayer("ink")

	eng := easel.NewBrushEngine()
	eng.SelectVariant(easel.VariantPen)
	eng.SetSize(3)
	eng.SetColor(easel.RGBA{R: 0.1, G: 0.1, B: 0.15, A: 1})

	y := float64(h) * 0.72
	doc.ApplyStroke(eng.BuildStroke(line(0, y, float64(w), y)))
}

// renderAnimation clones the composition across n frames, nudging the sun
// layer's opacity per frame, and writes frame_NN.png files.
func renderAnimation(doc *easel.Document, n, w int) {
	tl := doc.EnableAnimation(12)
	for i := 1; i < n; i++ {
		doc.AddFrame()
		// Pulse the sun across frames.
		t := float64(i) / float64(n)
		doc.SetLayerOpacity(2, 0.5+0.5*math.Cos(t*2*math.Pi))
	}

	buffers, durations := tl.RenderFrames(easel.NewCompositor(), doc.Background())
	for i, buf := range buffers {
		name := fmt.Sprintf("frame_%02d.png", i+1)
		if err := buf.SavePNG(name); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
		log.Printf("Frame %d saved to %s (%v)\n", i+1, name, durations[i])
	}
}

func line(x0, y0, x1, y1 float64) []easel.PressurePoint {
	return []easel.PressurePoint{
		{Position: easel.Pt(x0, y0), Pressure: 1},
		{Position: easel.Pt(x1, y1), Pressure: 1},
	}
}
