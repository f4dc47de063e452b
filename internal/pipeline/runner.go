package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/display"
	"github.com/backmassage/slidereel/internal/ffmpeg"
	"github.com/backmassage/slidereel/internal/logging"
	"github.com/backmassage/slidereel/internal/planner"
	"github.com/backmassage/slidereel/internal/probe"
)

// Encoder is the set of external-encoder operations the pipeline drives.
// Implemented by ffmpeg.Encoder; narrowed to an interface so the pipeline is
// testable without a binary.
type Encoder interface {
	RenderStill(ctx context.Context, framePath, clipPath string, duration float64, outPath string) ffmpeg.Result
	TrimAudio(ctx context.Context, musicPath string, start, duration float64, loop bool, outPath string) ffmpeg.Result
	ConcatCopy(ctx context.Context, manifestPath, outPath string) ffmpeg.Result
	ExtractAudio(ctx context.Context, videoPath, outPath string) ffmpeg.Result
	RemuxCopy(ctx context.Context, videoPath, audioPath string, duration float64, outPath string) ffmpeg.Result
}

// Prober answers media metadata queries (duration, stream presence).
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// FrameRenderer renders one input image into a canvas-sized frame file.
type FrameRenderer interface {
	ComposeFrame(imagePath, outPath string) error
}

// Runner executes a RunPlan with fixed collaborators.
type Runner struct {
	cfg  *config.Config
	log  *logging.Logger
	enc  Encoder
	prb  Prober
	comp FrameRenderer
}

// NewRunner wires a Runner. All collaborators are required.
func NewRunner(cfg *config.Config, log *logging.Logger, enc Encoder, prb Prober, comp FrameRenderer) *Runner {
	return &Runner{cfg: cfg, log: log, enc: enc, prb: prb, comp: comp}
}

// Run executes the plan: segments in order, then concat, then the soundtrack
// remux pass, then a final re-probe for the report. The first failure aborts
// immediately; scratch files already produced stay on disk.
func (r *Runner) Run(ctx context.Context, plan *planner.RunPlan) (*RunStats, error) {
	r.logHeader(plan)

	for i := range plan.Segments {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("interrupted before segment %d", plan.Segments[i].Index)
		}
		if err := r.processSegment(ctx, plan, &plan.Segments[i]); err != nil {
			return nil, err
		}
	}

	if err := r.concatenate(ctx, plan); err != nil {
		return nil, err
	}
	if err := r.remux(ctx, plan); err != nil {
		return nil, err
	}
	return r.report(ctx, plan)
}

// processSegment produces one video segment: the frame render and the audio
// trim run concurrently (they touch disjoint files), then the encoder joins
// them. The segment must carry an audio stream or the run aborts.
func (r *Runner) processSegment(ctx context.Context, plan *planner.RunPlan, seg *planner.SegmentPlan) error {
	r.log.Render("[%d/%d] %s (audio from %s at %ss)",
		seg.Index, len(plan.Segments),
		filepath.Base(seg.ImagePath), filepath.Base(seg.MusicPath),
		display.FormatSeconds(seg.Start))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.comp.ComposeFrame(seg.ImagePath, seg.FramePath)
	})
	g.Go(func() error {
		return r.trimClip(gctx, seg)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	res := r.enc.RenderStill(ctx, seg.FramePath, seg.ClipPath, seg.Duration, seg.SegmentPath)
	if res.Failed() {
		r.logDiagnostics(res)
		return fmt.Errorf("encode segment %d: %w", seg.Index, res.Err)
	}
	return r.requireAudio(ctx, seg.SegmentPath)
}

// trimClip cuts the segment's slice out of its music track. When the track
// is shorter than start+duration the source is looped, so the clip is always
// exactly the segment duration.
func (r *Runner) trimClip(ctx context.Context, seg *planner.SegmentPlan) error {
	pr, err := r.prb.Probe(ctx, seg.MusicPath)
	if err != nil {
		return fmt.Errorf("probe music %q: %w", seg.MusicPath, err)
	}
	if !pr.HasAudio() {
		return fmt.Errorf("music %q has no audio stream", seg.MusicPath)
	}

	loop := seg.Start+seg.Duration > pr.Duration()
	if loop {
		r.log.Warn("Music %s is shorter (%s) than required (%s+%s), looping",
			filepath.Base(seg.MusicPath), display.FormatSeconds(pr.Duration()),
			display.FormatSeconds(seg.Start), display.FormatSeconds(seg.Duration))
	}

	res := r.enc.TrimAudio(ctx, seg.MusicPath, seg.Start, seg.Duration, loop, seg.ClipPath)
	if res.Failed() {
		r.logDiagnostics(res)
		return fmt.Errorf("trim audio for segment %d: %w", seg.Index, res.Err)
	}
	return r.requireAudio(ctx, seg.ClipPath)
}

// concatenate merges the segments into plan.ConcatPath. A single segment is
// copied byte-for-byte (no re-encode); multiple segments go through the
// concat demuxer with pure stream copies.
func (r *Runner) concatenate(ctx context.Context, plan *planner.RunPlan) error {
	if len(plan.Segments) == 1 {
		r.log.Info("Single segment, copying directly")
		if err := copyFile(plan.Segments[0].SegmentPath, plan.ConcatPath); err != nil {
			return err
		}
	} else {
		if err := writeManifest(plan.ManifestPath, plan.Segments); err != nil {
			return err
		}
		r.log.Info("Concatenating %d segments", len(plan.Segments))
		res := r.enc.ConcatCopy(ctx, plan.ManifestPath, plan.ConcatPath)
		if res.Failed() {
			r.logDiagnostics(res)
			return fmt.Errorf("concatenate segments: %w", res.Err)
		}
	}
	return r.requireAudio(ctx, plan.ConcatPath)
}

// remux extracts the soundtrack from the concatenated video and re-attaches
// it with pure stream copies. Guards against players that mishandle audio
// carried through a plain concat copy.
func (r *Runner) remux(ctx context.Context, plan *planner.RunPlan) error {
	r.log.Info("Extracting soundtrack")
	res := r.enc.ExtractAudio(ctx, plan.ConcatPath, plan.SoundtrackPath)
	if res.Failed() {
		r.logDiagnostics(res)
		return fmt.Errorf("extract soundtrack: %w", res.Err)
	}
	if err := r.requireAudio(ctx, plan.SoundtrackPath); err != nil {
		return err
	}

	r.log.Info("Remuxing final video")
	res = r.enc.RemuxCopy(ctx, plan.ConcatPath, plan.SoundtrackPath, plan.TotalDuration, plan.OutputPath)
	if res.Failed() {
		r.logDiagnostics(res)
		return fmt.Errorf("remux final video: %w", res.Err)
	}
	return r.requireAudio(ctx, plan.OutputPath)
}

// report re-probes the finished file so the success line states measured
// duration, not the requested one.
func (r *Runner) report(ctx context.Context, plan *planner.RunPlan) (*RunStats, error) {
	abs, err := filepath.Abs(plan.OutputPath)
	if err != nil {
		abs = plan.OutputPath
	}

	stats := &RunStats{
		Segments:   len(plan.Segments),
		OutputPath: abs,
	}
	if pr, err := r.prb.Probe(ctx, plan.OutputPath); err == nil {
		stats.Duration = pr.Duration()
	}
	if fi, err := os.Stat(plan.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}

	r.log.Success("Video saved to: %s (%s, %s)",
		abs, display.FormatSeconds(stats.Duration), display.FormatBytes(stats.OutputBytes))
	return stats, nil
}

// requireAudio aborts the run when a produced artifact carries no audio
// stream. Every intermediate and the final file pass through this check.
func (r *Runner) requireAudio(ctx context.Context, path string) error {
	pr, err := r.prb.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("probe %q: %w", path, err)
	}
	if !pr.HasAudio() {
		return fmt.Errorf("no audio stream in %q", path)
	}
	return nil
}

// logDiagnostics logs the tail of the failing tool's stderr so the cause is
// visible before the error propagates.
func (r *Runner) logDiagnostics(res ffmpeg.Result) {
	if res.Stderr == "" {
		r.log.Error("encoder failed (exit %d) with no diagnostic output", res.ExitCode)
		return
	}
	r.log.Error("encoder failed (exit %d), last output:", res.ExitCode)
	lines := strings.Split(strings.TrimSpace(res.Stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		r.log.Error("  %s", l)
	}
}

func (r *Runner) logHeader(plan *planner.RunPlan) {
	r.log.Info("Segments: %d (%s each)", len(plan.Segments), display.FormatSeconds(plan.DurationPerImage))
	r.log.Info("Canvas: %dx%d, transform: %s", r.cfg.CanvasWidth, r.cfg.CanvasHeight, r.cfg.Transform)
	r.log.Info("Audio: %s at %s, round-robin across %d track(s)",
		r.cfg.AudioCodec, r.cfg.AudioBitrate, countTracks(plan))
	fmt.Println()
}

func countTracks(plan *planner.RunPlan) int {
	seen := map[string]bool{}
	for _, seg := range plan.Segments {
		seen[seg.MusicPath] = true
	}
	return len(seen)
}

// writeManifest writes the concat demuxer file list: one absolute segment
// path per line, in plan order.
func writeManifest(path string, segments []planner.SegmentPlan) error {
	var b strings.Builder
	for _, seg := range segments {
		abs, err := filepath.Abs(seg.SegmentPath)
		if err != nil {
			return fmt.Errorf("resolve segment path %q: %w", seg.SegmentPath, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}

// copyFile copies src to dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %q: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %q -> %q: %w", src, dst, err)
	}
	return out.Close()
}
