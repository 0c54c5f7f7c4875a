// Package devserver runs the local development server of the music player.
//
// A Server is a fiber application with three global middleware (rayid,
// accesslog, cors) in front of the static file feature. Run binds the listener,
// prints the banner and serves until its context is cancelled, which the
// root command ties to SIGINT and SIGTERM.
//
// # Console
//
// Console holds every human-facing message: startup warnings, the banner,
// the port conflict hint and the shutdown line. Access log lines are written
// to the same writer so the terminal shows one coherent stream.
//
// # Errors
//
// Bind failures are returned as *BindError after being printed.
// errors.Is(err, ErrPortInUse) distinguishes a port conflict from other
// failures; nothing is retried.
package devserver
