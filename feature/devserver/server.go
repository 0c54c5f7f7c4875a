package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"moment-server/core/loader"
	"moment-server/core/logger"
	"moment-server/core/middleware/accesslog"
	"moment-server/core/middleware/cors"
	"moment-server/core/middleware/rayid"
	"moment-server/core/server"
	"moment-server/feature/static"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrPortInUse matches a BindError caused by a port that is already bound.
var ErrPortInUse = errors.New("port already in use")

const defaultShutdownTimeout = 5 * time.Second

// BindError is returned when the listener cannot be created.
type BindError struct {
	Addr string
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPortInUse) detect port conflicts.
func (e *BindError) Is(target error) bool {
	return target == ErrPortInUse && errors.Is(e.Err, syscall.EADDRINUSE)
}

// Options configures a Server.
type Options struct {
	// Server holds the bind address, the absolute serving root, directory
	// listing and the shutdown timeout. Port 0 picks a free port.
	Server server.Config
	// Index is served for directory requests.
	Index string
	// Console receives the banner, messages and access log lines.
	Console *Console
	// Logger receives structured diagnostics.
	Logger *zap.Logger
}

// Server is the static file dev server.
type Server struct {
	opts   Options
	app    *fiber.App
	logger *zap.Logger
}

// New builds the fiber application: middleware first, then the features.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Console == nil {
		return nil, errors.New("devserver: console is required")
	}

	if opts.Server.ShutdownTimeout <= 0 {
		opts.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{opts: opts, logger: opts.Logger}

	app := fiber.New(fiber.Config{
		AppName:               "moment-server",
		DisableStartupMessage: true, // the console prints its own banner
	})

	// The access log wraps cors so preflight requests are logged too.
	app.Use(rayid.New())
	app.Use(accesslog.New(accesslog.Config{Output: opts.Console.Writer()}))
	app.Use(cors.New())
	app.Use(s.logRequest)

	mgr := loader.NewManager(opts.Logger)
	mgr.Register(static.NewFeature(static.Config{
		Root:   opts.Server.Root,
		Index:  opts.Index,
		Browse: opts.Server.Browse,
	}, opts.Logger))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}

	s.app = app
	return s, nil
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	err := c.Next()
	l := logger.WithRayID(s.logger, c)
	l.Debug("Request served",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Error(err),
	)
	return err
}

// Listen binds the TCP listener.
func (s *Server) Listen() (net.Listener, error) {
	addr := s.opts.Server.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Port: s.opts.Server.Port, Err: err}
	}
	return ln, nil
}

// Run binds the listener and serves until ctx is cancelled.
// Bind failures are printed on the console before being returned.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		if errors.Is(err, ErrPortInUse) {
			s.opts.Console.PortInUse(s.opts.Server.Port)
		} else {
			s.opts.Console.BindFailed(err)
		}
		s.logger.Debug("Bind failed", zap.Error(err))
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve prints the banner and serves on ln until ctx is cancelled, then
// prints the shutdown message and stops the app.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	port := s.opts.Server.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	s.opts.Console.Banner(port, s.opts.Server.Root)
	s.logger.Info("Dev server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("root", s.opts.Server.Root),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		s.opts.Console.Stopped()
		s.logger.Info("Shutting down server...")
		if err := s.app.ShutdownWithTimeout(s.opts.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	}
}
