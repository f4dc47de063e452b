// Package check provides pre-flight validation of the external encoder
// (CheckDeps) and the interactive --check diagnostics mode (RunCheck).
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found (set FFMPEG_PATH or --ffmpeg, or install it on PATH)")
	ErrFfprobeNotFound = errors.New("ffprobe not found next to the configured ffmpeg binary")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-pipeline validation: it resolves the configured
// encoder binary (explicit path or PATH lookup), verifies its companion
// probe binary exists, and writes the resolved encoder path back into cfg.
// Returns a sentinel error when either tool is missing.
func CheckDeps(cfg *config.Config) error {
	resolved, err := resolveBinary(cfg.FFmpegPath)
	if err != nil {
		return ErrFfmpegNotFound
	}
	cfg.FFmpegPath = resolved

	if _, err := resolveBinary(ffmpeg.ProbePath(resolved)); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints availability and version
// of ffmpeg and ffprobe and whether the required codecs are present.
// Informational only; it reports rather than stops on failure. Returns false
// when any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Encoder Check ===")

	ok := checkTool(log, "ffmpeg", cfg.FFmpegPath)
	ok = checkTool(log, "ffprobe", ffmpeg.ProbePath(cfg.FFmpegPath)) && ok
	ok = checkCodecs(cfg, log) && ok
	return ok
}

// checkTool verifies the binary resolves and logs its version line.
func checkTool(log Logger, name, path string) bool {
	resolved, err := resolveBinary(path)
	if err != nil {
		log.Error("%s not found (%s)", name, path)
		return false
	}
	out, err := exec.Command(resolved, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkCodecs verifies the configured video and audio encoders are compiled
// into the ffmpeg build.
func checkCodecs(cfg *config.Config, log Logger) bool {
	out, err := exec.Command(cfg.FFmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}

	ok := true
	for _, codec := range []string{cfg.VideoCodec, audioEncoderName(cfg.AudioCodec)} {
		if containsEncoder(string(out), codec) {
			log.Success("encoder available: %s", codec)
		} else {
			log.Error("encoder missing: %s", codec)
			ok = false
		}
	}
	return ok
}

// audioEncoderName maps a codec name to the encoder ffmpeg lists for it
// ("mp3" is encoded by libmp3lame).
func audioEncoderName(codec string) string {
	if codec == "mp3" {
		return "libmp3lame"
	}
	return codec
}

// containsEncoder scans ffmpeg -encoders output for an exact encoder name.
func containsEncoder(list, name string) bool {
	for _, line := range strings.Split(list, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

// resolveBinary turns a configured binary reference into a runnable path:
// names without a separator go through PATH lookup, explicit paths must
// exist on disk.
func resolveBinary(path string) (string, error) {
	if !strings.ContainsRune(path, os.PathSeparator) {
		return exec.LookPath(path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("stat %q: %w", path, err)
	}
	return path, nil
}
