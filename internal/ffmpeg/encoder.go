package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/slidereel/internal/config"
)

// Encoder invokes the external ffmpeg binary. All codec and format choices
// are fixed at construction from the Config so the per-operation methods
// only take the varying inputs.
type Encoder struct {
	Bin     string
	Verbose bool

	videoCodec   string
	audioCodec   string
	audioBitrate string
	pixelFormat  string
	size         string // "WxH"
}

// New builds an Encoder from cfg. cfg.FFmpegPath must already be resolved
// (see check.CheckDeps).
func New(cfg *config.Config) *Encoder {
	return &Encoder{
		Bin:          cfg.FFmpegPath,
		Verbose:      cfg.Verbose,
		videoCodec:   cfg.VideoCodec,
		audioCodec:   cfg.AudioCodec,
		audioBitrate: cfg.AudioBitrate,
		pixelFormat:  cfg.PixelFormat,
		size:         fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight),
	}
}

// ProbePath derives the companion probe binary path from the encoder binary
// path by name substitution ("ffmpeg" -> "ffprobe" in the basename, keeping
// any extension such as .exe). When the encoder is a bare PATH name with no
// "ffmpeg" in it, "ffprobe" is returned for a PATH lookup.
func ProbePath(encoderPath string) string {
	dir, base := filepath.Split(encoderPath)
	if i := strings.LastIndex(base, "ffmpeg"); i >= 0 {
		return dir + base[:i] + "ffprobe" + base[i+len("ffmpeg"):]
	}
	return "ffprobe"
}

// RenderStill combines one rendered frame (looped for the whole duration)
// with one trimmed audio clip into a fixed-duration video segment. The first
// input's video stream and the second input's audio stream are mapped
// explicitly so the segment always carries exactly one of each.
func (e *Encoder) RenderStill(ctx context.Context, framePath, clipPath string, duration float64, outPath string) Result {
	return e.run(ctx, e.renderStillArgs(framePath, clipPath, duration, outPath))
}

func (e *Encoder) renderStillArgs(framePath, clipPath string, duration float64, outPath string) []string {
	args := e.preamble()
	args = append(args,
		"-loop", "1", "-i", framePath,
		"-i", clipPath,
		"-c:v", e.videoCodec,
		"-c:a", e.audioCodec,
		"-b:a", e.audioBitrate,
		"-map", "0:v:0", "-map", "1:a:0",
		"-t", formatSeconds(duration),
		"-pix_fmt", e.pixelFormat,
		"-s", e.size,
		outPath,
	)
	return args
}

// TrimAudio extracts a clip of duration seconds starting at start from the
// music track. When loop is true the source is looped indefinitely before
// trimming, so the clip is always exactly duration long even if the source
// is shorter than start+duration.
func (e *Encoder) TrimAudio(ctx context.Context, musicPath string, start, duration float64, loop bool, outPath string) Result {
	return e.run(ctx, e.trimAudioArgs(musicPath, start, duration, loop, outPath))
}

func (e *Encoder) trimAudioArgs(musicPath string, start, duration float64, loop bool, outPath string) []string {
	args := e.preamble()
	if loop {
		// Input option: must precede -i to apply to the source.
		args = append(args, "-stream_loop", "-1")
	}
	args = append(args,
		"-i", musicPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-vn",
		"-c:a", e.audioCodec,
		"-b:a", e.audioBitrate,
		outPath,
	)
	return args
}

// ConcatCopy merges the segments listed in the concat-demuxer manifest with
// pure stream copies (no re-encode).
func (e *Encoder) ConcatCopy(ctx context.Context, manifestPath, outPath string) Result {
	return e.run(ctx, e.concatCopyArgs(manifestPath, outPath))
}

func (e *Encoder) concatCopyArgs(manifestPath, outPath string) []string {
	args := e.preamble()
	args = append(args,
		"-f", "concat", "-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		outPath,
	)
	return args
}

// ExtractAudio pulls the soundtrack out of a video into a standalone audio
// file for the remux pass.
func (e *Encoder) ExtractAudio(ctx context.Context, videoPath, outPath string) Result {
	return e.run(ctx, e.extractAudioArgs(videoPath, outPath))
}

func (e *Encoder) extractAudioArgs(videoPath, outPath string) []string {
	args := e.preamble()
	args = append(args,
		"-i", videoPath,
		"-vn",
		"-c:a", e.audioCodec,
		"-b:a", e.audioBitrate,
		outPath,
	)
	return args
}

// RemuxCopy repackages the video's picture stream and the extracted
// soundtrack into the final container without re-encoding, truncated to the
// requested total duration. One explicit re-association pass guards against
// players that mishandle audio carried through a plain concat copy.
func (e *Encoder) RemuxCopy(ctx context.Context, videoPath, audioPath string, duration float64, outPath string) Result {
	return e.run(ctx, e.remuxCopyArgs(videoPath, audioPath, duration, outPath))
}

func (e *Encoder) remuxCopyArgs(videoPath, audioPath string, duration float64, outPath string) []string {
	args := e.preamble()
	args = append(args,
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "copy",
		"-map", "0:v:0", "-map", "1:a:0",
		"-t", formatSeconds(duration),
		"-pix_fmt", e.pixelFormat,
		outPath,
	)
	return args
}

// preamble returns the shared leading arguments for every invocation.
func (e *Encoder) preamble() []string {
	args := make([]string, 0, 32)
	args = append(args, "-hide_banner", "-nostdin", "-y")
	if e.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	return args
}

// formatSeconds renders a duration or offset for the command line in the
// shortest decimal form that round-trips (3 -> "3", 1.5 -> "1.5").
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
