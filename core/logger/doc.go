// Package logger provides a structured logging facility based on Zap.
//
// Structured logs are diagnostics for the operator and always go to stderr.
// The human-facing console output of the dev server (banner, warnings,
// request lines) is written separately to stdout.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a
// Fiber context and attaches it to the log entry, so every log line emitted
// while serving a request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Serving directory", zap.String("root", root))
package logger
