// Package naming produces the deterministic scratch artifact paths for a run.
//
// Every intermediate file has a unique, index-keyed name inside the scratch
// directory, so no two pipeline steps ever write the same path:
//
//	frame_01.jpg       rendered frame for segment 1
//	clip_01.mp3        trimmed audio clip for segment 1
//	segment_1.mp4      encoded segment 1
//	segments.txt       concat demuxer manifest
//	concatenated.mp4   pre-remux concatenation
//	soundtrack.mp3     audio extracted for the remux pass
//
// Indices are 1-based to match the segment numbering shown in logs.
package naming
