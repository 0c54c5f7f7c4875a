// Package publish mirrors the serving root into an S3 compatible bucket.
//
// Publishing is split in two steps, the same way a reconcile run is:
//
//   - BuildPlan compares the local tree with the objects under the
//     configured prefix and returns the upload and delete actions needed.
//   - ApplyPlan executes a plan. Nothing is written unless the caller
//     confirmed the run and dry-run is off.
//
// Hidden files and directories (a leading dot, such as .env) are never
// published.
package publish
