package export

import (
	"errors"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// Crops are placed at 96 DPI so a page matches the on-screen size.
const (
	pixelsPerInch = 96
	mmPerInch     = 25.4
)

var errNothingToBundle = errors.New("no saved images to bundle")

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// BundlePDF writes one page per saved outcome, in order, to outPath. Each page
// is sized to its crop.
func BundlePDF(outPath, title string, pages []Outcome) error {
	var saved []Outcome
	for _, o := range pages {
		if o.Status == StatusSaved && o.Path != "" {
			saved = append(saved, o)
		}
	}
	if len(saved) == 0 {
		return errNothingToBundle
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	if title != "" {
		pdf.SetTitle(title, true)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	for _, o := range saved {
		wMm, hMm := pixelsToMm(o.Bounds.Dx()), pixelsToMm(o.Bounds.Dy())
		if wMm <= 0 || hMm <= 0 {
			wMm, hMm = 210, 297
		}
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wMm, Ht: hMm})
		w, h := pdf.GetPageSize()
		pdf.ImageOptions(o.Path, 0, 0, w, h, false, opt, 0, "")
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		_ = os.Remove(outPath)
		return err
	}
	return nil
}
