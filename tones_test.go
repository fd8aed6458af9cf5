package tonesplit

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueColorsSkipsTransparent(t *testing.T) {
	img := sprite([]color.NRGBA{transparent, dark, light},
		"0120",
		"0210",
	)
	assert.ElementsMatch(t, []color.NRGBA{dark, light}, UniqueColors(img, false))
	assert.ElementsMatch(t, []color.NRGBA{transparent, dark, light}, UniqueColors(img, true))
}

func TestClassifyTwoColors(t *testing.T) {
	img := sprite([]color.NRGBA{transparent, dark, light},
		"012",
		"210",
	)
	tones, err := Classify(img, false)
	require.NoError(t, err)

	assert.Equal(t, []color.NRGBA{dark, light}, tones.Palette)
	assert.Equal(t, light, tones.Lightest)
	assert.Equal(t, dark, tones.LightestBase)
	assert.Equal(t, dark, tones.Darkest)
	assert.Equal(t, light, tones.DarkestBase)
	assert.Equal(t, Delta{180, 150, 120}, tones.LightestDelta)
	assert.Equal(t, Delta{180, 150, 120}, tones.DarkestDelta)
}

func TestClassifyThreeColorsUsesMiddleAsBase(t *testing.T) {
	img := sprite([]color.NRGBA{transparent, dark, mid, light},
		"0123",
		"3210",
	)
	tones, err := Classify(img, false)
	require.NoError(t, err)

	assert.Equal(t, []color.NRGBA{dark, mid, light}, tones.Palette)
	assert.Equal(t, mid, tones.LightestBase)
	assert.Equal(t, mid, tones.DarkestBase)
	assert.Equal(t, Delta{100, 80, 60}, tones.LightestDelta)
	assert.Equal(t, Delta{80, 70, 60}, tones.DarkestDelta)
}

func TestClassifyKeepTransparent(t *testing.T) {
	img := sprite([]color.NRGBA{transparent, mid},
		"01",
		"10",
	)
	tones, err := Classify(img, true)
	require.NoError(t, err)

	assert.Equal(t, mid, tones.Lightest)
	assert.Equal(t, transparent, tones.Darkest)
	assert.Equal(t, Delta{100, 100, 100}, tones.LightestDelta)
	assert.Equal(t, Delta{100, 100, 100}, tones.DarkestDelta)
}

func TestClassifyUnsupportedPalette(t *testing.T) {
	other := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	tests := []struct {
		name string
		img  *image.NRGBA
	}{
		{"empty", sprite([]color.NRGBA{transparent}, "00", "00")},
		{"one", sprite([]color.NRGBA{transparent, mid}, "01", "10")},
		{"four", sprite([]color.NRGBA{dark, mid, light, other}, "01", "23")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.img, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedPalette))
		})
	}
}

func TestClassifyDeltaIsNotClamped(t *testing.T) {
	yellow := color.NRGBA{R: 250, G: 250, B: 0, A: 255}
	blue := color.NRGBA{R: 0, G: 0, B: 200, A: 255}
	img := sprite([]color.NRGBA{yellow, blue}, "01")

	tones, err := Classify(img, false)
	require.NoError(t, err)
	assert.Equal(t, yellow, tones.Lightest)
	assert.Equal(t, Delta{250, 250, -200}, tones.LightestDelta)
	assert.Equal(t, Delta{250, 250, -200}, tones.DarkestDelta)
}

func TestClassifyTieBreak(t *testing.T) {
	a := color.NRGBA{R: 30, G: 20, B: 10, A: 255}
	b := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := sprite([]color.NRGBA{a, b}, "01")

	tones, err := Classify(img, false)
	require.NoError(t, err)
	assert.Equal(t, []color.NRGBA{b, a}, tones.Palette)
}

func TestWriteReport(t *testing.T) {
	img := sprite([]color.NRGBA{transparent, dark, mid, light}, "0123")
	tones, err := Classify(img, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tones.WriteReport(&buf))
	want := "unique colors: [(20, 30, 40, 255), (100, 100, 100, 255), (200, 180, 160, 255)]\n" +
		"lightest color: (200, 180, 160, 255)\n" +
		"lightest base color: (100, 100, 100, 255)\n" +
		"lightest color difference: (100, 80, 60)\n" +
		"darkest color: (20, 30, 40, 255)\n" +
		"darkest base color: (100, 100, 100, 255)\n" +
		"darkest color difference: (80, 70, 60)\n"
	assert.Equal(t, want, buf.String())
}
