package planner

import (
	"github.com/backmassage/slidereel/internal/naming"
)

// BuildPlan computes the segment schedule: the total duration is split
// evenly across all images, segment order follows image input order, and
// music tracks are assigned round-robin (track i%len(musics) for segment i)
// with each segment's audio starting at its own timeline offset.
//
// images and musics must be non-empty resolved absolute paths
// (config.Validate and paths.ResolveAll guarantee this).
func BuildPlan(images, musics []string, totalDuration float64, scratchDir, outputPath string) *RunPlan {
	dpi := totalDuration / float64(len(images))

	plan := &RunPlan{
		Segments:         make([]SegmentPlan, 0, len(images)),
		DurationPerImage: dpi,
		TotalDuration:    totalDuration,
		ManifestPath:     naming.ManifestPath(scratchDir),
		ConcatPath:       naming.ConcatPath(scratchDir),
		SoundtrackPath:   naming.SoundtrackPath(scratchDir),
		OutputPath:       outputPath,
	}

	for i, imagePath := range images {
		index := i + 1
		plan.Segments = append(plan.Segments, SegmentPlan{
			Index:       index,
			ImagePath:   imagePath,
			MusicPath:   musics[i%len(musics)],
			Start:       float64(i) * dpi,
			Duration:    dpi,
			FramePath:   naming.FramePath(scratchDir, index),
			ClipPath:    naming.ClipPath(scratchDir, index),
			SegmentPath: naming.SegmentPath(scratchDir, index),
		})
	}
	return plan
}
