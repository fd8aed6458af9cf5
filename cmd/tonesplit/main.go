// Command tonesplit separates the highlight and shadow tones of a small
// palette sprite into <name>_highlights.<ext> and <name>_shadows.<ext>.
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/setanarut/tonesplit"
	"github.com/setanarut/tonesplit/preview"
	"github.com/setanarut/tonesplit/utils"
)

var (
	mode            = flag.String("mode", "delta", "fill of matching pixels: delta or grey")
	keepTransparent = flag.Bool("keep_transparent", false, "count fully transparent pixels as a palette color")
	reduce          = flag.Int("reduce", 0, "snap the image to 2 or 3 tones before splitting (0 disables)")
	reduceMethod    = flag.String("reduce_method", "dominantcolor", "palette source for -reduce: dominantcolor or kmeans")
	swatchPath      = flag.String("swatch", "", "if set, write the ranked palette swatch to this path")
	previewMode     = flag.String("preview", "none", "print the layers on the terminal: none, 24bit, 256 or raster")
	previewWidth    = flag.Int("preview_width", 64, "max preview width in cells")
	quiet           = flag.Bool("quiet", false, "do not print detected colors")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <image>\n", os.Args[0])
	flag.PrintDefaults()
}

func options() (tonesplit.Options, error) {
	opt := tonesplit.DefaultOptions()
	switch *mode {
	case "delta":
		opt.Mode = tonesplit.ModeDelta
	case "grey", "gray":
		opt.Mode = tonesplit.ModeGrey
	default:
		return opt, errors.Errorf("unknown mode %q", *mode)
	}
	method, err := utils.ParsePaletteMethod(*reduceMethod)
	if err != nil {
		return opt, err
	}
	opt.KeepTransparent = *keepTransparent
	opt.Reduce = *reduce
	opt.ReduceMethod = method
	return opt, nil
}

func main() {
	flag.Usage = usage
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	opt, err := options()
	if err != nil {
		glog.Exitf("bad flags: %v", err)
	}
	pm, err := preview.ParseMode(*previewMode)
	if err != nil {
		glog.Exitf("bad flags: %v", err)
	}

	img, err := utils.ReadImage(path)
	if err != nil {
		glog.Exitf("%v", err)
	}
	glog.V(2).Infof("read %s: %v", path, img.Bounds())

	s := tonesplit.NewSplitter(img)
	if err := s.Split(opt); err != nil {
		glog.Exitf("splitting %s: %v", path, err)
	}
	if !*quiet {
		if err := s.Tones.WriteReport(os.Stdout); err != nil {
			glog.Warningf("report: %v", err)
		}
	}

	outputs := []struct {
		path  string
		layer *tonesplit.Layer
	}{
		{tonesplit.HighlightsPath(path), s.Highlights},
		{tonesplit.ShadowsPath(path), s.Shadows},
	}
	for _, o := range outputs {
		if err := utils.SaveImage(o.layer, o.path); err != nil {
			glog.Exitf("%v", err)
		}
		glog.Infof("wrote %s", o.path)
		if err := preview.Print(os.Stdout, o.layer, pm, *previewWidth); err != nil {
			glog.Warningf("preview of %s: %v", o.path, err)
		}
	}

	if *swatchPath != "" {
		if err := utils.SavePalette(s.Tones.Palette, 32, *swatchPath); err != nil {
			glog.Exitf("%v", err)
		}
		glog.Infof("wrote %s", *swatchPath)
	}
}
