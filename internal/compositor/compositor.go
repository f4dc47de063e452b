// Package compositor renders one still image into a canvas-sized frame:
// resize, transformation, overlay text, and the captioned bottom banner.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	_ "image/gif"
	_ "image/png"

	"github.com/backmassage/slidereel/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"
)

// Fixed layout constants. Overlay text sits at a fixed offset from the
// top-left; the caption banner is the text bounding box grown by the margins
// and raised bottomOffset px off the canvas bottom.
const (
	overlayX      = 10
	overlayY      = 10
	bottomOffset  = 20
	bannerMarginX = 10
	bannerMarginY = 5
	bannerAlpha   = 128 // Semi-transparent white.
	jpegQuality   = 90
)

// Compositor renders frames for one run. All settings are fixed at
// construction; ComposeFrame is then called once per image.
type Compositor struct {
	width     int
	height    int
	transform config.Transformation
	overlay   string
	caption   string
	face      font.Face
	fontLabel string
}

// New builds a Compositor from cfg, resolving the overlay/caption font.
// An explicitly configured font that fails to load is an error; otherwise
// the candidate search falls back to the builtin bitmap face.
func New(cfg *config.Config) (*Compositor, error) {
	face, label, err := resolveFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return nil, err
	}
	return &Compositor{
		width:     cfg.CanvasWidth,
		height:    cfg.CanvasHeight,
		transform: cfg.Transform,
		overlay:   cfg.OverlayText,
		caption:   cfg.Caption,
		face:      face,
		fontLabel: label,
	}, nil
}

// FontLabel reports which font the compositor resolved, for logging.
func (c *Compositor) FontLabel() string { return c.fontLabel }

// ComposeFrame renders the image at imagePath into a canvas-sized frame and
// writes it as JPEG to outPath. Any decode, draw, or save failure is
// returned and aborts the run.
func (c *Compositor) ComposeFrame(imagePath, outPath string) error {
	src, err := decode(imagePath)
	if err != nil {
		return err
	}

	img := resize(src, c.width, c.height)

	switch c.transform {
	case config.TransformGrayscale:
		grayscale(img)
	case config.TransformRotate:
		img = rotate90(img)
	case config.TransformResize:
		// Identity: the canvas resize above already produced the target size.
		img = resize(img, c.width, c.height)
	}

	if c.overlay != "" {
		c.drawOverlay(img)
	}
	c.drawCaption(img)

	return saveJPEG(outPath, img)
}

// decode opens and decodes an image file (JPEG, PNG, or GIF).
func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// resize scales src to w×h with Catmull-Rom resampling.
func resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// grayscale converts img to luma in place (Rec. 601 weights).
func grayscale(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			luma := (299*int(p[0]) + 587*int(p[1]) + 114*int(p[2])) / 1000
			p[0], p[1], p[2] = uint8(luma), uint8(luma), uint8(luma)
		}
	}
}

// rotate90 rotates img 90° counterclockwise about the canvas center onto a
// same-sized canvas. Regions the rotated image does not cover stay black;
// regions rotated outside the canvas are cropped.
func rotate90(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := w/2, h/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Inverse rotation: the source pixel that lands at (x, y).
			sx := cx - (y - cy)
			sy := cy + (x - cx)
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				dst.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			dst.SetRGBA(x, y, img.RGBAAt(sx, sy))
		}
	}
	return dst
}

// drawOverlay draws the overlay text in white with its bounding box anchored
// at the fixed top-left offset.
func (c *Compositor) drawOverlay(img *image.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: c.face,
	}
	b, _ := d.BoundString(c.overlay)
	d.Dot = fixed.Point26_6{
		X: fixed.I(overlayX) - b.Min.X,
		Y: fixed.I(overlayY) - b.Min.Y,
	}
	d.DrawString(c.overlay)
}

// drawCaption paints the semi-transparent banner and the black caption text,
// horizontally centered near the canvas bottom.
func (c *Compositor) drawCaption(img *image.RGBA) {
	dot, banner := captionLayout(c.face, c.caption, c.width, c.height)

	draw.Draw(img, banner,
		image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: bannerAlpha}),
		image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: c.face,
		Dot:  dot,
	}
	d.DrawString(c.caption)
}

// captionLayout computes the caption baseline origin and the banner
// rectangle for a caption measured with face on a w×h canvas. The text
// bounding box is centered horizontally and its bottom edge sits
// bottomOffset px above the canvas bottom; the banner is that box grown by
// the fixed margins.
func captionLayout(face font.Face, caption string, w, h int) (fixed.Point26_6, image.Rectangle) {
	d := &font.Drawer{Face: face}
	b, _ := d.BoundString(caption)

	textW := (b.Max.X - b.Min.X).Ceil()
	textH := (b.Max.Y - b.Min.Y).Ceil()
	textX := (w - textW) / 2
	textY := h - textH - bottomOffset // Top edge of the text box.

	dot := fixed.Point26_6{
		X: fixed.I(textX) - b.Min.X,
		Y: fixed.I(textY) - b.Min.Y,
	}
	banner := image.Rect(
		textX-bannerMarginX, textY-bannerMarginY,
		textX+textW+bannerMarginX, textY+textH+bannerMarginY,
	)
	return dot, banner
}

// saveJPEG writes img to path. JPEG has no alpha channel, so this is also
// the flatten-to-RGB step before encoding.
func saveJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %q: %w", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode frame %q: %w", path, err)
	}
	return nil
}
