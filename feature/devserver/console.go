package devserver

import (
	"fmt"
	"io"
	"strings"

	"moment-server/feature/integrity"
)

const rule = "=================================================="

// Console prints the human-facing messages of the dev server.
// The wording is part of the user interface; structured logs go to zap.
type Console struct {
	w       io.Writer
	program string
}

// NewConsole creates a console writing to w. program is the command name
// suggested when the port is already taken.
func NewConsole(w io.Writer, program string) *Console {
	return &Console{w: w, program: program}
}

// Writer returns the underlying writer, shared with the access log.
func (c *Console) Writer() io.Writer {
	return c.w
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

// InvalidPort warns that the port argument was rejected.
func (c *Console) InvalidPort(arg string, fallback int) {
	c.printf("Warning: invalid port number %q, using default port %d\n", arg, fallback)
}

// MissingFile warns about one required file.
func (c *Console) MissingFile(path string) {
	c.printf("Warning: required file not found: %s\n", path)
}

// NoAudio warns that the audio directory holds no recognised audio file.
func (c *Console) NoAudio(dir string, exts []string) {
	c.printf("Warning: no audio files (%s) found, put audio files into %s/\n",
		strings.Join(exts, ", "), strings.TrimSuffix(dir, "/"))
}

// Startup prints the warnings of a startup report. Returns the number of
// warnings printed.
func (c *Console) Startup(report *integrity.StartupReport, exts []string) int {
	n := 0
	for _, path := range report.Missing {
		c.MissingFile(path)
		n++
	}
	if report.Audio.Empty() {
		c.NoAudio(report.Audio.Dir, exts)
		n++
	}
	if n > 0 {
		c.printf("\n")
	}
	return n
}

// Banner announces the listen URL and the serving root.
func (c *Console) Banner(port int, root string) {
	c.printf("Moment Music Player dev server\n")
	c.printf("%s\n", rule)
	c.printf("Server address: http://localhost:%d\n", port)
	c.printf("Serving directory: %s\n", root)
	c.printf("Press Ctrl+C to stop the server\n")
	c.printf("%s\n\n", rule)
}

// Stopped is printed when the server shuts down after an interrupt.
func (c *Console) Stopped() {
	c.printf("\n\nServer stopped\n")
}

// PortInUse reports a port conflict and suggests the next port.
func (c *Console) PortInUse(port int) {
	c.printf("Error: port %d is already in use, try another port:\n", port)
	c.printf("   %s %d\n", c.program, port+1)
}

// BindFailed reports any other listener error.
func (c *Console) BindFailed(err error) {
	c.printf("Error: failed to start server: %v\n", err)
}
