package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to bind. Empty binds every interface.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port int `mapstructure:"port" default:"8000"`
	// Root is the directory files are served from. Empty means the
	// directory containing the executable.
	Root string `mapstructure:"root" default:""`
	// Browse enables directory listings for folders without an index file.
	Browse bool `mapstructure:"browse" default:"true"`
	// ShutdownTimeout bounds the graceful shutdown after an interrupt.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"5s"`
}

// MaxPort is the highest valid TCP port.
const MaxPort = 65535

// ErrInvalidPort is returned when a port argument is not an integer in range.
var ErrInvalidPort = errors.New("invalid port number")

// ParsePort parses a command-line port argument.
func ParsePort(arg string) (int, error) {
	port, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, arg)
	}
	if port < 0 || port > MaxPort {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidPort, port)
	}
	return port, nil
}

// Address returns the listen address, host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ResolveRoot returns the absolute serving root.
// When configured is empty the directory of the running executable is used.
func ResolveRoot(configured string) (string, error) {
	dir := configured
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve serving root %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("serving root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("serving root %s is not a directory", abs)
	}

	return abs, nil
}
