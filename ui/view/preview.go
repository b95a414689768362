package view

import (
	"image"

	"github.com/soocke/sshot-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview shows a thumbnail of the most recently saved crop with its file
// name underneath.
type Preview interface {
	Update(img image.Image, caption string)
	Reset()
}

type preview struct {
	imageLabel   *LabelWidget
	captionLabel *LabelWidget
	prevPhoto    *Img // disposed before replacement
}

const (
	maxPreviewW = images.DefaultThumbWidth
	maxPreviewH = images.DefaultThumbHeight
)

// NewPreview creates the preview labels spanning columns 0-2 of row and the
// row below it.
func NewPreview(row int) Preview {
	photo := NewPhoto(Data(placeholderPNG()))
	img := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	caption := Label(Txt("No preview"), Anchor("center"))
	Grid(img, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(caption, Row(row+1), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))
	return &preview{imageLabel: img, captionLabel: caption, prevPhoto: photo}
}

func (v *preview) Update(img image.Image, caption string) {
	if v.imageLabel == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	v.replace(images.EncodePNG(scaled))
	if v.captionLabel != nil {
		v.captionLabel.Configure(Txt(caption))
	}
}

func (v *preview) Reset() {
	if v.imageLabel == nil {
		return
	}
	v.replace(placeholderPNG())
	if v.captionLabel != nil {
		v.captionLabel.Configure(Txt("No preview"))
	}
}

func (v *preview) replace(pngBytes []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.imageLabel.Configure(Image(v.prevPhoto))
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, maxPreviewW, maxPreviewH)))
}
