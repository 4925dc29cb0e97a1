// Command vtextdemo renders a line of text to a PNG using the CPU
// reference rasterizer. It exercises the full pipeline — font parsing,
// outline decomposition, glyph caching, layout and analytic coverage —
// without needing a GPU.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/vectortext"
)

func main() {
	var (
		fontPath    = flag.String("font", "", "TTF/OTF font file (default: first system font found)")
		text        = flag.String("text", "The quick brown fox", "text to render")
		size        = flag.Float64("size", 64, "em size in pixels")
		output      = flag.String("out", "vtext.png", "output PNG file")
		aaWindow    = flag.Float64("aa", 1.0, "anti-aliasing window in pixels")
		supersample = flag.Bool("ss", false, "enable supersampled coverage")
		useSFNT     = flag.Bool("sfnt", false, "parse the font with x/image/font/sfnt instead of go-text")
		debugBoxes  = flag.Bool("boxes", false, "layout debug box quads (not visible in CPU output)")
	)
	flag.Parse()

	path := *fontPath
	if path == "" {
		path = findSystemFont()
		if path == "" {
			log.Fatal("no system font found; pass -font")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read font: %v", err)
	}

	var source vectortext.Source
	if *useSFNT {
		source, err = vectortext.NewSFNTSource(data)
	} else {
		source, err = vectortext.NewGoTextSource(data)
	}
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}

	fc := vectortext.NewFontContext(source)
	scale := float32(*size) / float32(fc.UnitsPerEm())

	// Size the image from the measured text.
	advance, bounds := fc.Measure(*text, scale)
	margin := float32(*size) * 0.25
	width := int(advance + 2*margin)
	if w := int(bounds.MaxX + 2*margin); w > width {
		width = w
	}
	height := int(bounds.Height() + 2*margin)
	if width <= 0 || height <= 0 {
		log.Fatalf("nothing to render for %q", *text)
	}
	baseline := bounds.MaxY + margin

	opts := vectortext.DefaultLayoutOptions()
	opts.DebugBoxes = *debugBoxes
	mesh, err := fc.LayoutTextOptions(*text, margin, baseline, scale, opts)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	params := vectortext.CoverageParams{
		AAWindow:    float32(*aaWindow),
		Supersample: *supersample,
	}
	mask := vectortext.Rasterize(fc, mesh, width, height, params)

	// Black text over white.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	log.Printf("rendered %q to %s (%dx%d, %d quads, %d curves)",
		*text, *output, width, height, mesh.QuadCount(), fc.NumCurves())
}

// findSystemFont returns a path to a TTF font (TTC collections not
// supported).
func findSystemFont() string {
	candidates := []string{
		// Windows
		"C:\\Windows\\Fonts\\arial.ttf",
		"C:\\Windows\\Fonts\\segoeui.ttf",
		// macOS
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/Library/Fonts/Arial.ttf",
		// Linux
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
