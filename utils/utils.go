package utils

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/golang/glog"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownFormat is returned when no encoder matches the output extension.
	ErrUnknownFormat = errors.New("unknown image format")
	// ErrEmptyPalette is returned when there is nothing to snap pixels to.
	ErrEmptyPalette = errors.New("empty palette")
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps a method name back to its PaletteMethod.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(s) {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, errors.Errorf("unknown palette method %q", s)
}

// AverageIntensity is the floored mean of the R, G and B channels.
func AverageIntensity(c color.NRGBA) int {
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// SortByAverage orders colors from darkest to brightest by AverageIntensity.
// Equal intensities fall back to the packed RGBA value.
func SortByAverage(palette []color.NRGBA) {
	slices.SortFunc(palette, func(a, b color.NRGBA) int {
		ai, bi := AverageIntensity(a), AverageIntensity(b)
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
		pa, pb := packRGBA(a), packRGBA(b)
		if pa < pb {
			return -1
		}
		if pa > pb {
			return 1
		}
		return 0
	})
}

func packRGBA(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(img, nCandidates)
	if len(candidates) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors, starting from the
// heaviest one and then favouring colors far (in Lab) from those already picked.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab []float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: []float64{l, a, b}, w: w})
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
			minD := math.MaxFloat64
			for _, s := range selectedIdx {
				minD = min(minD, floats.Distance(items[i].lab, items[s].lab, 2))
			}
			score := minD * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
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

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	// Sprites are small, every opaque pixel is an observation.
	dataset := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			// Undo premultiplication so edge pixels keep their hue.
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / float64(a16),
				float64(g16) / float64(a16),
				float64(b16) / float64(a16),
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// ExtractPalette picks k colors with method. When it finds fewer than k the
// other method is tried and the longer palette wins.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	first, second := ExtractDominantPalette, ExtractKMeansPalette
	other := PaletteMethodKMeans
	if method == PaletteMethodKMeans {
		first, second = second, first
		other = PaletteMethodDominantColor
	}
	p := first(img, k)
	if len(p) >= k {
		return p
	}
	// dominantcolor seeds from a handful of samples and can miss sparse sprites.
	glog.Warningf("%s found %d of %d colors, falling back to %s", method, len(p), k, other)
	if q := second(img, k); len(q) > len(p) {
		return q
	}
	return p
}

// SnapToPalette replaces every pixel with alpha >= 128 by its nearest palette
// entry in Lab space, made opaque. Other pixels become fully transparent.
func SnapToPalette(img *image.NRGBA, palette []colorful.Color) (*image.NRGBA, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	targets := make([]color.NRGBA, len(palette))
	for i, p := range palette {
		r, g, bl := p.Clamped().RGB255()
		targets[i] = color.NRGBA{R: r, G: g, B: bl, A: 255}
	}

	nearest := make(map[color.NRGBA]color.NRGBA)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A < 128 {
				continue
			}
			c.A = 255
			snapped, ok := nearest[c]
			if !ok {
				col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
				best := math.MaxFloat64
				for i, p := range palette {
					if d := col.DistanceLab(p); d < best {
						best = d
						snapped = targets[i]
					}
				}
				nearest[c] = snapped
			}
			out.SetNRGBA(x, y, snapped)
		}
	}
	return out, nil
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// SaveImage encodes img with the encoder matching the extension of filename.
func SaveImage(img image.Image, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
	default:
		return errors.Wrapf(ErrUnknownFormat, "no encoder for %q", ext)
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = tiff.Encode(f, img, nil)
	}
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", filename)
	}
	return errors.Wrapf(f.Close(), "closing %s", filename)
}

// SavePalette writes the palette as a strip of tileSize squares, in order.
func SavePalette(palette []color.NRGBA, tileSize int, filename string) error {
	if len(palette) == 0 {
		return errors.New("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}

	return SaveImage(img, filename)
}
