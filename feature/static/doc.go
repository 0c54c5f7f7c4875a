// Package static serves the player's files from the serving root.
//
// It is a thin layer over fasthttp's file server: content types come from
// the file extension, byte ranges are honoured, directory requests fall back
// to index.html and, when browsing is enabled, folders without an index are
// listed. Files are read from disk on every request so edits show up on the
// next reload. Requests are resolved strictly inside the root; anything that
// does not map to a file there ends in a 404.
package static
