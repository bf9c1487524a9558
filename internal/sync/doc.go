// Package sync implements the artifact synchronization pipeline.
//
// A pipeline run has two branches, executed strictly in order. The epithet
// branch mirrors epithets.json from the upstream repository's branch tip.
// The etymology branch regenerates etymologies.json, either with the
// built-in Kotus generator or by running a configured external command.
// Each branch follows the same pattern: refresh the artifact, stage it,
// diff against HEAD, and commit and push only when the content changed.
//
// An exclusive run lock is held for the duration of each branch so a
// scheduled run and a manual invocation cannot interleave on the same
// working copy. Nothing is retried within a run; a failed branch aborts
// with a wrapped error and the next run starts over from scratch.
package sync
