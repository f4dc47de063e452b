// Package ffmpeg wraps the external encoder binary behind the five
// operations the pipeline needs:
//
//   - RenderStill: loop one frame + one audio clip into a fixed-duration segment
//   - TrimAudio:   cut (and optionally loop) a music track to a clip
//   - ConcatCopy:  lossless concat-demuxer merge of segments
//   - ExtractAudio: pull the soundtrack out of the concatenated video
//   - RemuxCopy:   re-attach the soundtrack with pure stream copies
//
// Each operation builds an explicit argument vector (builders are kept
// separate from execution so they are testable without a binary) and returns
// a structured Result carrying the captured stderr and exit code instead of
// raising on string-matched output.
package ffmpeg
