package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/timetable/internal/api"
	"github.com/jmylchreest/timetable/internal/dbus"
	"github.com/jmylchreest/timetable/internal/watch"
)

var serveOpts struct {
	listen  string
	dbus    bool
	noHTTP  bool
	noWatch bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the theme and schedule to the UI",
	Long: `Serve the request handlers until interrupted.

Transports:
  - HTTP and WebSocket on server.listen (default 127.0.0.1:7878)
  - D-Bus session service io.github.jmylchreest.Timetable (dbus.enabled or --dbus)

While serving, the theme and schedule files are watched and connected clients
are told when either changes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.listen, "listen", "",
		"HTTP listen address (overrides server.listen)")
	serveCmd.Flags().BoolVar(&serveOpts.dbus, "dbus", false,
		"Export the D-Bus service")
	serveCmd.Flags().BoolVar(&serveOpts.noHTTP, "no-http", false,
		"Disable the HTTP server")
	serveCmd.Flags().BoolVar(&serveOpts.noWatch, "no-watch", false,
		"Disable file watching")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handlers, err := newHandlers(false)
	if err != nil {
		return err
	}

	var notifiers []watch.ChangeHandler

	var server *api.Server
	if cfg.Server.Enabled && !serveOpts.noHTTP {
		server = api.NewServer(handlers, logger)
		notifiers = append(notifiers, server.NotifyChange)
	}

	if cfg.DBus.Enabled || serveOpts.dbus {
		service := dbus.NewService(handlers, logger)
		if err := service.Start(); err != nil {
			return err
		}
		defer func() { _ = service.Stop() }()
		notifiers = append(notifiers, service.NotifyChange)
	}

	if len(notifiers) == 0 {
		return errors.New("no transport enabled (enable server or dbus)")
	}

	if cfg.Watch.Enabled && !serveOpts.noWatch {
		paths := handlers.State()
		fw, err := watch.NewFileWatcher(paths.ThemePath, paths.DataPath, cfg.Watch.Debounce.Duration(),
			func(kind watch.Kind) {
				for _, notify := range notifiers {
					notify(kind)
				}
			}, logger)
		if err != nil {
			logger.Warn("file watching disabled", "error", err)
		} else {
			if err := fw.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = fw.Stop() }()
		}
	}

	paths := handlers.State()
	logger.Info("serving", "theme", paths.ThemePath, "data", paths.DataPath)

	if server == nil {
		<-ctx.Done()
		return nil
	}

	listen := cfg.Server.Listen
	if serveOpts.listen != "" {
		listen = serveOpts.listen
	}
	return server.ListenAndServe(ctx, listen)
}
