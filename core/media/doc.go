// Package media describes the file layout of the music player: the entry
// page, the playlist, per-song metadata documents and the audio directory.
package media
