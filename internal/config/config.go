// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Fixed values (canvas size, codecs) live here as Config fields so
// every component receives them explicitly instead of reading globals.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Transformation selects the per-image transformation applied after the
// canvas resize.
type Transformation string

const (
	TransformGrayscale Transformation = "grayscale" // Convert to luma.
	TransformRotate    Transformation = "rotate"    // Rotate 90° about the canvas center.
	TransformResize    Transformation = "resize"    // Re-resize to canvas size (identity).
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ApplyEnv] and [ParseFlags] before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Inputs (relative paths are resolved against BaseDir at startup).
	Images []string
	Musics []string

	// Overlay and caption.
	OverlayText string         // Optional; white, drawn at (10,10).
	Caption     string         // Required; black on a translucent banner, bottom center.
	Transform   Transformation // Required.
	FontPath    string         // Optional TTF override; empty means search defaults.
	FontSize    float64        // Fixed: 40pt.

	// Timing and output.
	DurationSec int    // Default: 10. Total video duration in seconds.
	OutputPath  string // Default: "final_video.mp4".

	// Canvas (fixed 1920x1080).
	CanvasWidth  int
	CanvasHeight int

	// Encoding.
	VideoCodec   string // Fixed: "libx264".
	AudioCodec   string // Fixed: "mp3".
	AudioBitrate string // Default: "192k".
	PixelFormat  string // Fixed: "yuv420p".

	// External encoder binary. The probe binary is derived from it by name
	// substitution (ffmpeg -> ffprobe).
	FFmpegPath string // Default: "ffmpeg" (PATH lookup). $FFMPEG_PATH overrides.

	// Scratch area. Created under BaseDir, never cleaned up automatically so
	// intermediates stay inspectable after a failure.
	ScratchDirName string // Fixed: "temp".
	BaseDir        string // Resolved working directory; set at startup.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ApplyEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		FontSize:       40,
		DurationSec:    10,
		OutputPath:     "final_video.mp4",
		CanvasWidth:    1920,
		CanvasHeight:   1080,
		VideoCodec:     "libx264",
		AudioCodec:     "mp3",
		AudioBitrate:   "192k",
		PixelFormat:    "yuv420p",
		FFmpegPath:     "ffmpeg",
		ScratchDirName: "temp",
		ColorMode:      ColorAuto,
	}
}

// ApplyEnv overlays environment settings onto cfg. Called after
// [DefaultConfig] and before [ParseFlags] so flags win over the environment.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("FFMPEG_PATH"); p != "" {
		cfg.FFmpegPath = p
	}
}

// Validate checks enum fields and required inputs. In CheckOnly mode only the
// enum and bitrate checks apply, so --check works without any inputs.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	normalizedBitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalizedBitrate

	if c.CheckOnly {
		return nil
	}

	switch c.Transform {
	case TransformGrayscale, TransformRotate, TransformResize:
		// valid
	default:
		return errors.New("invalid transformation (use 'grayscale', 'rotate' or 'resize')")
	}

	if len(c.Images) == 0 {
		return errors.New("need at least one image (-i)")
	}
	if len(c.Musics) == 0 {
		return errors.New("need at least one music track (-m)")
	}
	if strings.TrimSpace(c.Caption) == "" {
		return errors.New("caption must not be empty (-c)")
	}
	if c.DurationSec <= 0 {
		return fmt.Errorf("duration must be positive (got %d)", c.DurationSec)
	}
	if c.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "192", "192k", "192K", "192kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
