package planner

// SegmentPlan holds everything needed to produce one video segment: which
// image and music track it uses, its slice of the timeline, and the scratch
// paths its intermediate artifacts are written to.
type SegmentPlan struct {
	Index int // 1-based; also the segment's position in the final video.

	ImagePath string
	MusicPath string

	Start    float64 // Audio start offset into the assigned track, in seconds.
	Duration float64 // Segment length in seconds (same for every segment).

	FramePath   string // Rendered frame (compositor output).
	ClipPath    string // Trimmed audio clip.
	SegmentPath string // Encoded segment.
}

// RunPlan is the complete schedule for one run, in final video order.
type RunPlan struct {
	Segments []SegmentPlan

	DurationPerImage float64
	TotalDuration    float64

	ManifestPath   string
	ConcatPath     string
	SoundtrackPath string
	OutputPath     string
}
