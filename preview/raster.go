//go:build !windows

package preview

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

func printRaster(w io.Writer, img image.Image) error {
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(w, img); err != nil {
			return errors.Wrap(err, "kitty")
		}
		_, err := fmt.Fprintln(w)
		return err
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(w, img); err != nil {
			return errors.Wrap(err, "iterm")
		}
		_, err := fmt.Fprintln(w)
		return err
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(img.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, img.Bounds(), img, image.Point{})

		if err := (rasterm.Settings{}).SixelWriteImage(w, palettedImage); err != nil {
			return errors.Wrap(err, "sixel")
		}
		_, err := fmt.Fprintln(w)
		return err
	}
	return errors.New("terminal has no inline image support")
}
