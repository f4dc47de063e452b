// Package probe provides ffprobe-based media inspection and typed result
// structures. One JSON call per file answers everything the pipeline asks:
// total duration for the trim/loop decision and stream presence for the
// audio-stream validation every produced artifact must pass.
//
// The probe binary path is derived from the configured ffmpeg path by name
// substitution (see ffmpeg.ProbePath), so a custom encoder location carries
// over to its companion probe tool.
package probe
