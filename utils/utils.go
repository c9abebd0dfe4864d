package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/pixelio"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

type weightedColor struct {
	Col    pixelio.RGBAColor
	Weight float64
}

// luminance of the linear RGB part.
func luminance(c pixelio.RGBAColor) float64 {
	r, g, b := c.Colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []pixelio.RGBAColor) {
	slices.SortFunc(palette, func(a, b pixelio.RGBAColor) int {
		ya, yb := luminance(a), luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod is the inverse of PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(s) {
	case "kmeans":
		return PaletteMethodKMeans, nil
	case "dominantcolor", "":
		return PaletteMethodDominantColor, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// ExtractDominantPalette returns up to k background candidates, strongest
// first, picked from the weighted dominant colours of b.
func ExtractDominantPalette(b *pixelio.Bitmap, k int) []pixelio.RGBAColor {
	if k <= 0 {
		return nil
	}
	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(b, nCandidates)
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, err := pixelio.NewRGBAColor(
			float64(c.RGBA.R)/255,
			float64(c.RGBA.G)/255,
			float64(c.RGBA.B)/255,
			1,
		)
		if err != nil {
			continue
		}
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col, Weight: w})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colours: the heaviest first,
// then whichever candidate is farthest in Lab from everything picked so
// far, with a bonus for weight.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []pixelio.RGBAColor {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col pixelio.RGBAColor
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		l, a, b := c.Col.Colorful().Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: c.Col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	bestSeed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[bestSeed].w {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]pixelio.RGBAColor, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// ExtractKMeansPalette clusters the RGBA values of b and returns up to k
// cluster centres, most populated first. Fully transparent pixels are
// ignored.
func ExtractKMeansPalette(b *pixelio.Bitmap, k int) []pixelio.RGBAColor {
	if k <= 0 {
		return nil
	}
	width, height := b.Width(), b.Height()

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			c, err := b.PixelRGBA(x, y)
			if err != nil {
				log.Printf("kmeans palette: %v", err)
				return nil
			}
			if c.A() == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{c.R(), c.G(), c.B(), c.A()})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Sort by cluster population so dominant colors come first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 4 || len(c.Observations) == 0 {
			continue
		}
		col, err := pixelio.RGBAFromColorful(
			colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]},
			max(0, min(1, c.Center[3])),
		)
		if err != nil {
			continue
		}
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractPalette(b *pixelio.Bitmap, k int, method PaletteMethod) []pixelio.RGBAColor {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(b, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(b, k)
	default:
		return ExtractDominantPalette(b, k)
	}
}

// EstimateBackground guesses the flat background colour of b. The
// statistical dominant colour is preferred; when its refinement does not
// settle, the strongest palette colour is used instead.
func EstimateBackground(b *pixelio.Bitmap, maxDeviation float64, method PaletteMethod) (pixelio.RGBAColor, error) {
	dev, err := pixelio.Uniform(maxDeviation)
	if err != nil {
		return pixelio.RGBAColor{}, err
	}
	bg, err := b.DominantColor(dev)
	if err == nil {
		return bg, nil
	}
	if !errors.Is(err, pixelio.ErrConvergence) && !errors.Is(err, pixelio.ErrEmptySet) {
		return pixelio.RGBAColor{}, err
	}
	log.Printf("background warning: %v, falling back to %v palette", err, method)
	palette := ExtractPalette(b, 1, method)
	if len(palette) == 0 {
		return pixelio.RGBAColor{}, fmt.Errorf("no background candidate: %w", err)
	}
	return palette[0], nil
}

// ReadBitmap decodes a PNG, JPEG, GIF, BMP or TIFF file.
func ReadBitmap(path string) (*pixelio.Bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return pixelio.FromImage(img)
}

// SaveBitmap encodes b by file extension: .bmp, .tif/.tiff, anything else PNG.
func SaveBitmap(b *pixelio.Bitmap, filename string) error {
	return SaveImage(b, filename)
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// SavePalette writes one square swatch per colour, alpha included.
func SavePalette(palette []pixelio.RGBAColor, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		sw := color.NRGBA{
			R: uint8(math.Round(c.R() * 255)),
			G: uint8(math.Round(c.G() * 255)),
			B: uint8(math.Round(c.B() * 255)),
			A: uint8(math.Round(c.A() * 255)),
		}
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, sw)
			}
		}
	}
	return SaveImage(img, filename)
}
