package naming

import (
	"fmt"
	"path/filepath"
)

// FramePath returns the rendered frame path for a 1-based segment index.
func FramePath(scratchDir string, index int) string {
	return filepath.Join(scratchDir, fmt.Sprintf("frame_%02d.jpg", index))
}

// ClipPath returns the trimmed audio clip path for a 1-based segment index.
func ClipPath(scratchDir string, index int) string {
	return filepath.Join(scratchDir, fmt.Sprintf("clip_%02d.mp3", index))
}

// SegmentPath returns the encoded video segment path for a 1-based index.
func SegmentPath(scratchDir string, index int) string {
	return filepath.Join(scratchDir, fmt.Sprintf("segment_%d.mp4", index))
}

// ManifestPath returns the concat demuxer manifest path.
func ManifestPath(scratchDir string) string {
	return filepath.Join(scratchDir, "segments.txt")
}

// ConcatPath returns the pre-remux concatenated video path.
func ConcatPath(scratchDir string) string {
	return filepath.Join(scratchDir, "concatenated.mp4")
}

// SoundtrackPath returns the extracted soundtrack path used by the remux pass.
func SoundtrackPath(scratchDir string) string {
	return filepath.Join(scratchDir, "soundtrack.mp3")
}
