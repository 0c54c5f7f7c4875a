// Package integrity checks that the serving root holds what the player needs.
//
// # Checks Provided
//
//   - Required: the entry page and the playlist file exist.
//   - Audio: the audio directory, when present, holds at least one file with
//     a recognised extension. An absent directory is not a problem.
//   - Playlist: every song listed in the playlist has a valid document and
//     every file it references (audio, lyrics, images) exists.
//
// The dev server runs Startup before binding and prints a warning for each
// finding without aborting. The `check` command runs RunAll and prints the
// complete Report.
//
// All checks read through an afero.Fs confined to the serving root, so
// tests run against an in-memory filesystem.
package integrity
