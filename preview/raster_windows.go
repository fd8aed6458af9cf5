//go:build windows

package preview

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

func printRaster(w io.Writer, img image.Image) error {
	return errors.New("raster preview not supported on windows")
}
