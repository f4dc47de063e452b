package config

// This file implements CLI flag parsing and help text.
// Multi-value inputs (-i/--image, -m/--music) use a flag.Value adapter that
// accepts repeated flags as well as comma-separated lists.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad enum value).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("slidereel", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var showHelp, showVersion, forceColor, noColor bool

	// Inputs.
	fs.Var(&pathListValue{&cfg.Images}, "images", "Input images (repeatable)")
	fs.Var(&pathListValue{&cfg.Images}, "image", "Same as --images")
	fs.Var(&pathListValue{&cfg.Images}, "i", "Same as --images")
	fs.Var(&pathListValue{&cfg.Musics}, "musics", "Music tracks (repeatable)")
	fs.Var(&pathListValue{&cfg.Musics}, "music", "Same as --musics")
	fs.Var(&pathListValue{&cfg.Musics}, "m", "Same as --musics")

	// Overlay and caption.
	fs.StringVar(&cfg.OverlayText, "text", "", "Overlay text (white, top-left)")
	fs.StringVar(&cfg.OverlayText, "t", "", "Same as --text")
	fs.StringVar(&cfg.Caption, "caption", "", "Caption text (black, bottom center)")
	fs.StringVar(&cfg.Caption, "c", "", "Same as --caption")
	fs.Var(&transformationValue{&cfg.Transform}, "transformation", "Transformation: grayscale | rotate | resize")
	fs.Var(&transformationValue{&cfg.Transform}, "tr", "Same as --transformation")
	fs.StringVar(&cfg.FontPath, "font", "", "TTF font for overlay and caption")

	// Timing and output.
	fs.IntVar(&cfg.DurationSec, "duration", cfg.DurationSec, "Total video duration in seconds")
	fs.IntVar(&cfg.DurationSec, "d", cfg.DurationSec, "Same as --duration")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output video file path")
	fs.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "Same as --output")

	// Encoder.
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "Path to the ffmpeg binary")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "Audio bitrate (e.g. 192k)")

	// Display and utility.
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (incl. live encoder output)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run encoder diagnostics and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "slidereel v"+version)
		os.Exit(0)
	}

	if args := fs.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument %q (inputs are given with -i and -m)", args[0])
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "slidereel v" + version + " - slideshow video assembler"},
		{"", ""},
		{"  slidereel [OPTIONS]", ""},
		{"", ""},
		{"Inputs", ""},
		{"  -i, --images <path>", "Input image (repeat or comma-separate; required)"},
		{"  -m, --musics <path>", "Music track (repeat or comma-separate; required)"},
		{"", ""},
		{"Rendering", ""},
		{"  -t, --text <string>", "Overlay text (white, top-left)"},
		{"  -c, --caption <string>", "Caption text (required; black, bottom center)"},
		{"  -tr, --transformation <name>", "grayscale | rotate | resize (required)"},
		{"  --font <path>", "TTF font for overlay and caption"},
		{"", ""},
		{"Output", ""},
		{"  -d, --duration <seconds>", "Total video duration (default: 10)"},
		{"  -o, --output <path>", "Output file (default: final_video.mp4)"},
		{"  --audio-bitrate <rate>", "Audio bitrate (default: 192k)"},
		{"", ""},
		{"Encoder", ""},
		{"  --ffmpeg <path>", "ffmpeg binary ($FFMPEG_PATH or PATH by default)"},
		{"  --check", "Encoder diagnostics (ffmpeg, ffprobe, codecs)"},
		{"", ""},
		{"Display & utility", ""},
		{"  --color / --no-color", "Force / disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters.

// pathListValue accumulates repeated flag occurrences into a string slice.
// Comma-separated values within one occurrence are split, so both
// "-i a.jpg -i b.jpg" and "-i a.jpg,b.jpg" work.
type pathListValue struct{ p *[]string }

func (v *pathListValue) String() string {
	if v.p == nil {
		return ""
	}
	return strings.Join(*v.p, ",")
}

func (v *pathListValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		*v.p = append(*v.p, part)
	}
	return nil
}

type transformationValue struct{ p *Transformation }

func (t *transformationValue) String() string {
	if t.p == nil {
		return ""
	}
	return string(*t.p)
}
func (t *transformationValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "grayscale":
		*t.p = TransformGrayscale
	case "rotate":
		*t.p = TransformRotate
	case "resize":
		*t.p = TransformResize
	default:
		return fmt.Errorf("invalid transformation %q (use 'grayscale', 'rotate' or 'resize')", s)
	}
	return nil
}
