package pipeline

// RunStats describes a completed run: what was produced and the measured
// (re-probed, not merely echoed) properties of the deliverable.
type RunStats struct {
	Segments    int
	OutputPath  string  // Absolute path of the final video.
	Duration    float64 // Probed duration of the final video, in seconds.
	OutputBytes int64
}
