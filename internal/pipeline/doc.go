// Package pipeline orchestrates the run: per-segment frame rendering, audio
// trimming and segment encoding in plan order, then concatenation, the
// soundtrack remux pass, and the final report.
//
// Within one segment the frame render and the audio trim are independent and
// run concurrently; segments themselves are processed strictly in order so
// the final concatenation order always matches the image input order.
//
// There are no retries: the first failure at any stage aborts the run, with
// the external tool's stderr tail logged first. Scratch artifacts from
// completed steps are left on disk for inspection.
package pipeline
