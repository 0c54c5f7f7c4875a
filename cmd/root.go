package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moment-server/core/config"
	"moment-server/core/logger"
	"moment-server/core/server"
	"moment-server/feature/devserver"
	"moment-server/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootDir string
	host    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "moment-server [port]",
	Short: "Moment Music Player dev server",
	Long: `Serves the Moment music player, its playlist and audio files over HTTP
with permissive CORS headers, so the player can be opened from a browser
without same-origin errors.

The optional port argument defaults to 8000.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Bind failures were already explained on the console.
		var bindErr *devserver.BindError
		if !errors.As(err, &bindErr) {
			cfg := &logger.Config{
				Level:  "debug",
				Format: "console",
			}

			l, logErr := logger.New(cfg)
			if logErr == nil {
				l.Error("command failed", zap.Error(err))
				_ = l.Sync()
			} else {
				fmt.Println(err)
			}
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Directory to serve (default: directory of the executable, or SERVER_ROOT)")
	RootCmd.Flags().StringVar(&host, "host", "", "Interface to bind (default: all interfaces, or SERVER_HOST)")
}

// bootstrap loads the configuration, installs the global logger and
// resolves the serving root.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	if cmd.Flags().Changed("root") {
		cfg.Server.Root = rootDir
	}
	root, err := server.ResolveRoot(cfg.Server.Root)
	if err != nil {
		return nil, nil, err
	}
	cfg.Server.Root = root

	return cfg, logg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logg.Sync()

	console := devserver.NewConsole(cmd.OutOrStdout(), cmd.Root().Name())

	if len(args) > 0 {
		port, err := server.ParsePort(args[0])
		if err != nil {
			console.InvalidPort(args[0], cfg.Server.Port)
			logg.Debug("Ignoring port argument", zap.String("arg", args[0]), zap.Error(err))
		} else {
			cfg.Server.Port = port
		}
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}

	svc := integrity.NewService(integrity.RootFs(cfg.Server.Root), cfg.Media, logg)
	console.Startup(svc.Startup(), cfg.Media.Extensions())

	srv, err := devserver.New(devserver.Options{
		Server:  cfg.Server,
		Index:   cfg.Media.Index,
		Console: console,
		Logger:  logg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
