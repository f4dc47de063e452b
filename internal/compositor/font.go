package compositor

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FallbackFontLabel is reported by FontLabel when no TTF font could be
// loaded and the builtin bitmap face is in use.
const FallbackFontLabel = "builtin 7x13 bitmap"

// fontCandidates are tried in order when no explicit font is configured.
// Mirrors the usual "arial.ttf in the working directory, else a system sans"
// lookup without requiring any font to be installed.
var fontCandidates = []string{
	"arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// LoadFace parses a TTF file into a font.Face at the given point size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// resolveFace returns the face to render with and a label for logging.
//
// An explicitly configured font that fails to load is an error. With no
// configuration the candidates are tried in order; when none loads the fixed
// bitmap face basicfont.Face7x13 is used (7px glyph advance, 13px line
// height, 11px ascent), which keeps caption metrics deterministic on systems
// without any TTF font.
func resolveFace(fontPath string, size float64) (font.Face, string, error) {
	if fontPath != "" {
		face, err := LoadFace(fontPath, size)
		if err != nil {
			return nil, "", err
		}
		return face, fontPath, nil
	}

	for _, candidate := range fontCandidates {
		face, err := LoadFace(candidate, size)
		if err == nil {
			return face, candidate, nil
		}
	}
	return basicfont.Face7x13, FallbackFontLabel, nil
}
