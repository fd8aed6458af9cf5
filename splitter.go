package tonesplit

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"

	"github.com/setanarut/tonesplit/utils"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("empty image")

type Options struct {
	// Fill of the matching pixels in both layers.
	Mode FillMode
	// Count fully transparent pixels as a palette color.
	KeepTransparent bool
	// Snap the image to this many tones before classifying.
	// 0 disables reduction; anti-aliased sprites usually want 3.
	Reduce int
	// Palette source used when Reduce is set.
	ReduceMethod utils.PaletteMethod
}

func DefaultOptions() Options {
	return Options{
		Mode:         ModeDelta,
		ReduceMethod: utils.PaletteMethodDominantColor,
	}
}

type Splitter struct {
	InputImage image.Image
	// Source is the input as NRGBA, after reduction when enabled.
	Source     *image.NRGBA
	Tones      Tones
	Highlights *Layer
	Shadows    *Layer
}

func NewSplitter(input image.Image) *Splitter {
	return &Splitter{InputImage: input}
}

// Split classifies the input palette and builds both layers.
func (s *Splitter) Split(opt Options) error {
	if s.InputImage == nil || s.InputImage.Bounds().Empty() {
		return ErrEmptyImage
	}
	s.makeNRGBA()
	if opt.Reduce > 0 {
		if opt.Reduce < 2 || opt.Reduce > 3 {
			return errors.Errorf("cannot reduce to %d tones, want 2 or 3", opt.Reduce)
		}
		if err := s.reduce(opt.Reduce, opt.ReduceMethod); err != nil {
			return err
		}
	}

	tones, err := Classify(s.Source, opt.KeepTransparent)
	if err != nil {
		return err
	}
	s.Tones = tones
	s.Highlights = Filter(s.Source, tones.Lightest, tones.LightestDelta, opt.Mode)
	s.Shadows = Filter(s.Source, tones.Darkest, tones.DarkestDelta, opt.Mode)
	return nil
}

func (s *Splitter) makeNRGBA() {
	if src, ok := s.InputImage.(*image.NRGBA); ok {
		s.Source = src
		return
	}
	b := s.InputImage.Bounds()
	s.Source = image.NewNRGBA(b)
	draw.Draw(s.Source, b, s.InputImage, b.Min, draw.Src)
}

func (s *Splitter) reduce(k int, method utils.PaletteMethod) error {
	palette := utils.ExtractPalette(s.Source, k, method)
	snapped, err := utils.SnapToPalette(s.Source, palette)
	if err != nil {
		return errors.Wrapf(err, "reducing to %d tones with %s", k, method)
	}
	s.Source = snapped
	return nil
}

// Split is a shorthand for NewSplitter(img).Split(opt).
func Split(img image.Image, opt Options) (*Splitter, error) {
	s := NewSplitter(img)
	if err := s.Split(opt); err != nil {
		return nil, err
	}
	return s, nil
}
