// Package planner computes the per-segment schedule for a run before any
// rendering or encoding happens: even duration split across images,
// round-robin music assignment, per-segment audio start offsets, and the
// deterministic scratch paths each segment will use.
//
// The plan is pure data; the pipeline package executes it. The trim/loop
// decision is not made here because it needs the music track's probed
// duration, which is only known at execution time.
package planner
