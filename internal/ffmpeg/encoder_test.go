package ffmpeg

import (
	"strings"
	"testing"

	"github.com/backmassage/slidereel/internal/config"
)

func testEncoder() *Encoder {
	cfg := config.DefaultConfig()
	return New(&cfg)
}

// argString joins args for simple substring assertions.
func argString(args []string) string { return strings.Join(args, " ") }

func TestRenderStillArgs(t *testing.T) {
	e := testEncoder()
	args := e.renderStillArgs("temp/frame_01.jpg", "temp/clip_01.mp3", 3, "temp/segment_1.mp4")
	s := argString(args)

	for _, want := range []string{
		"-loop 1 -i temp/frame_01.jpg",
		"-i temp/clip_01.mp3",
		"-c:v libx264",
		"-c:a mp3",
		"-b:a 192k",
		"-map 0:v:0 -map 1:a:0",
		"-t 3",
		"-pix_fmt yuv420p",
		"-s 1920x1080",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("args missing %q: %s", want, s)
		}
	}
	if args[len(args)-1] != "temp/segment_1.mp4" {
		t.Errorf("output path must be last, got %q", args[len(args)-1])
	}
}

func TestTrimAudioArgs(t *testing.T) {
	e := testEncoder()

	t.Run("no loop", func(t *testing.T) {
		args := e.trimAudioArgs("music.mp3", 3, 3, false, "temp/clip_02.mp3")
		s := argString(args)
		if strings.Contains(s, "-stream_loop") {
			t.Errorf("unexpected -stream_loop: %s", s)
		}
		for _, want := range []string{"-i music.mp3", "-ss 3", "-t 3", "-vn", "-c:a mp3", "-b:a 192k"} {
			if !strings.Contains(s, want) {
				t.Errorf("args missing %q: %s", want, s)
			}
		}
	})

	t.Run("loop precedes input", func(t *testing.T) {
		args := e.trimAudioArgs("music.mp3", 6, 3, true, "temp/clip_03.mp3")
		s := argString(args)
		loopIdx := strings.Index(s, "-stream_loop -1")
		inputIdx := strings.Index(s, "-i music.mp3")
		if loopIdx < 0 {
			t.Fatalf("args missing -stream_loop -1: %s", s)
		}
		if loopIdx > inputIdx {
			t.Errorf("-stream_loop must precede -i to be an input option: %s", s)
		}
	})

	t.Run("fractional offsets", func(t *testing.T) {
		args := e.trimAudioArgs("music.mp3", 4.5, 1.5, false, "out.mp3")
		s := argString(args)
		if !strings.Contains(s, "-ss 4.5") || !strings.Contains(s, "-t 1.5") {
			t.Errorf("fractional seconds mangled: %s", s)
		}
	})
}

func TestConcatCopyArgs(t *testing.T) {
	e := testEncoder()
	args := e.concatCopyArgs("temp/segments.txt", "temp/concatenated.mp4")
	s := argString(args)
	for _, want := range []string{"-f concat -safe 0", "-i temp/segments.txt", "-c copy"} {
		if !strings.Contains(s, want) {
			t.Errorf("args missing %q: %s", want, s)
		}
	}
	if strings.Contains(s, "-c:v") {
		t.Errorf("concat must be a pure stream copy: %s", s)
	}
}

func TestExtractAudioArgs(t *testing.T) {
	e := testEncoder()
	args := e.extractAudioArgs("temp/concatenated.mp4", "temp/soundtrack.mp3")
	s := argString(args)
	for _, want := range []string{"-i temp/concatenated.mp4", "-vn", "-c:a mp3", "-b:a 192k"} {
		if !strings.Contains(s, want) {
			t.Errorf("args missing %q: %s", want, s)
		}
	}
}

func TestRemuxCopyArgs(t *testing.T) {
	e := testEncoder()
	args := e.remuxCopyArgs("temp/concatenated.mp4", "temp/soundtrack.mp3", 9, "final_video.mp4")
	s := argString(args)
	for _, want := range []string{
		"-i temp/concatenated.mp4",
		"-i temp/soundtrack.mp3",
		"-c:v copy",
		"-c:a copy",
		"-map 0:v:0 -map 1:a:0",
		"-t 9",
		"-pix_fmt yuv420p",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("args missing %q: %s", want, s)
		}
	}
}

func TestPreamble_Loglevel(t *testing.T) {
	e := testEncoder()
	if s := argString(e.preamble()); !strings.Contains(s, "-loglevel error") {
		t.Errorf("quiet preamble: %s", s)
	}
	e.Verbose = true
	if s := argString(e.preamble()); !strings.Contains(s, "-loglevel info") {
		t.Errorf("verbose preamble: %s", s)
	}
}

func TestProbePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare name", "ffmpeg", "ffprobe"},
		{"unix path", "/usr/local/bin/ffmpeg", "/usr/local/bin/ffprobe"},
		{"windows exe", `C:\tools\bin\ffmpeg.exe`, `C:\tools\bin\ffprobe.exe`},
		{"suffixed build", "/opt/ffmpeg-6.1/ffmpeg-static", "/opt/ffmpeg-6.1/ffprobe-static"},
		{"no ffmpeg in name", "/opt/bin/encoder", "ffprobe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProbePath(tt.in)
			if got != tt.want {
				t.Errorf("ProbePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{1.5, "1.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	// Repeating decimals round-trip rather than truncate.
	if got := formatSeconds(10.0 / 3.0); !strings.HasPrefix(got, "3.333") {
		t.Errorf("formatSeconds(10/3) = %q", got)
	}
}
