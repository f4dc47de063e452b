package compositor

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/backmassage/slidereel/internal/config"
)

// testCompositor returns a Compositor with the deterministic bitmap face so
// tests do not depend on installed fonts.
func testCompositor(t *testing.T, transform config.Transformation, overlay, caption string) *Compositor {
	t.Helper()
	return &Compositor{
		width:     1920,
		height:    1080,
		transform: transform,
		overlay:   overlay,
		caption:   caption,
		face:      basicfont.Face7x13,
		fontLabel: "builtin 7x13 bitmap",
	}
}

// writeTestPNG writes a small two-tone PNG and returns its path.
func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{R: 200, G: 40, B: 40, A: 255}
			if x >= 32 {
				c = color.RGBA{R: 40, G: 40, B: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCaptionLayout_HorizontallyCentered(t *testing.T) {
	tests := []struct {
		name    string
		caption string
	}{
		{"short", "hi"},
		{"typical", "summer trip 2025"},
		{"long", "a rather long caption that still has to stay centered on the canvas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, banner := captionLayout(basicfont.Face7x13, tt.caption, 1920, 1080)

			// Banner margins are symmetric, so centering means the left and
			// right edges mirror around the canvas midline (±1 for integer
			// division).
			mid := banner.Min.X + banner.Max.X
			if mid < 1920-1 || mid > 1920+1 {
				t.Errorf("banner %v not centered: Min.X+Max.X = %d, want ~1920", banner, mid)
			}
			if banner.Max.Y > 1080 {
				t.Errorf("banner %v extends below the canvas", banner)
			}
			if banner.Dx() <= 2*bannerMarginX {
				t.Errorf("banner %v has no room for text", banner)
			}
		})
	}
}

func TestCaptionLayout_MarginsAroundText(t *testing.T) {
	_, banner := captionLayout(basicfont.Face7x13, "margins", 1920, 1080)

	// 7px advance per glyph for the bitmap face.
	textW := 7 * len("margins")
	if got := banner.Dx(); got != textW+2*bannerMarginX {
		t.Errorf("banner width = %d, want %d", got, textW+2*bannerMarginX)
	}
}

func TestComposeFrame_WritesCanvasSizedJPEG(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	out := filepath.Join(dir, "frame_01.jpg")

	c := testCompositor(t, config.TransformResize, "hello", "caption")
	if err := c.ComposeFrame(in, out); err != nil {
		t.Fatalf("ComposeFrame: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output frame missing: %v", err)
	}
	defer f.Close()
	cfgImg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if cfgImg.Width != 1920 || cfgImg.Height != 1080 {
		t.Errorf("frame size = %dx%d, want 1920x1080", cfgImg.Width, cfgImg.Height)
	}
}

func TestComposeFrame_MissingInput(t *testing.T) {
	c := testCompositor(t, config.TransformResize, "", "caption")
	err := c.ComposeFrame(filepath.Join(t.TempDir(), "nope.png"), filepath.Join(t.TempDir(), "out.jpg"))
	if err == nil {
		t.Error("ComposeFrame should fail for a missing input image")
	}
}

func TestGrayscale_NeutralizesChannels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 10, B: 120, A: 255})
		}
	}

	grayscale(img)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := img.RGBAAt(x, y)
			if p.R != p.G || p.G != p.B {
				t.Fatalf("pixel (%d,%d) = %+v not gray", x, y, p)
			}
		}
	}
	// Rec. 601: 0.299*250 + 0.587*10 + 0.114*120 ≈ 94.
	if p := img.RGBAAt(0, 0); p.R < 92 || p.R > 96 {
		t.Errorf("luma = %d, want ≈94", p.R)
	}
}

func TestRotate90_KeepsBoundsAndMovesPixels(t *testing.T) {
	// Wide canvas with a marker right of center: after a 90° CCW rotation
	// about the center it must appear above the center.
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	marker := color.RGBA{R: 255, A: 255}
	img.SetRGBA(30, 10, marker) // 10 px right of center (20,10).

	got := rotate90(img)

	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", got.Bounds())
	}
	if p := got.RGBAAt(20, 0); p != marker {
		t.Errorf("marker not rotated to (20,0): %+v", p)
	}
	// Corners swing outside the canvas on a non-square image; the vacated
	// area must be black, not transparent.
	if p := got.RGBAAt(0, 0); p.A != 255 || p.R != 0 || p.G != 0 || p.B != 0 {
		t.Errorf("uncovered corner = %+v, want opaque black", p)
	}
}

func TestResize_TargetDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 33, 17))
	dst := resize(src, 1920, 1080)
	if dst.Bounds().Dx() != 1920 || dst.Bounds().Dy() != 1080 {
		t.Errorf("resize produced %v", dst.Bounds())
	}
}
