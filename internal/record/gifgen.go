package record

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"github.com/nfnt/resize"
)

// Options configures GIF generation: playback speed and the output frame
// width frames are downscaled to before palette reduction.
type Options struct {
	FPS      int
	MaxWidth uint
}

// Generate resizes and palette-reduces frames, encodes them as a looping
// animated GIF, and writes the result to outputPath, returning its size in
// bytes. A single palette sampled from the first frame is shared across
// every frame rather than recomputed per frame, trading some color fidelity
// on later frames for a much smaller encode.
func Generate(frames []image.Image, outputPath string, opts Options) (int64, error) {
	if len(frames) == 0 {
		return 0, nil
	}

	delay := 100 / opts.FPS
	bounds := frames[0].Bounds()
	outputWidth := opts.MaxWidth
	if outputWidth == 0 {
		outputWidth = 800
	}
	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	outputHeight := uint(float64(outputWidth) * aspectRatio)

	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}

	palette := generatePalette(frames[0])

	for i, frame := range frames {
		resized := resize.Resize(outputWidth, outputHeight, frame, resize.Lanczos3)
		paletted := image.NewPaletted(resized.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, resized.Bounds(), resized, image.Point{})
		g.Image[i] = paletted
		g.Delay[i] = delay
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, g); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// generatePalette samples img on a coarse grid, ranks the distinct colors
// it finds by frequency, and keeps the 255 most common plus a reserved
// transparent slot at index 0, padding out to 256 with grayscale filler if
// the frame doesn't have that many distinct colors.
func generatePalette(img image.Image) color.Palette {
	bounds := img.Bounds()
	colorMap := make(map[color.RGBA]int)

	step := 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			colorMap[color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}]++
		}
	}

	type colorCount struct {
		c     color.RGBA
		count int
	}
	colors := make([]colorCount, 0, len(colorMap))
	for c, count := range colorMap {
		colors = append(colors, colorCount{c, count})
	}
	for i := 0; i < len(colors)-1; i++ {
		for j := i + 1; j < len(colors); j++ {
			if colors[j].count > colors[i].count {
				colors[i], colors[j] = colors[j], colors[i]
			}
		}
	}

	palette := make(color.Palette, 0, 256)
	palette = append(palette, color.RGBA{0, 0, 0, 0})
	for i := 0; i < len(colors) && len(palette) < 256; i++ {
		palette = append(palette, colors[i].c)
	}
	for len(palette) < 256 {
		gray := uint8(len(palette))
		palette = append(palette, color.RGBA{gray, gray, gray, 255})
	}
	return palette
}
