package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/config"
	urldomain "github.com/deskshell/deskshell/internal/domain/url"
	"github.com/deskshell/deskshell/internal/infrastructure/desktop"
	gtkadapter "github.com/deskshell/deskshell/internal/infrastructure/gtk"
	"github.com/deskshell/deskshell/internal/infrastructure/notify"
	"github.com/deskshell/deskshell/internal/infrastructure/persistence/sqlite"
	"github.com/deskshell/deskshell/internal/infrastructure/tray"
	"github.com/deskshell/deskshell/internal/logging"
	"github.com/deskshell/deskshell/internal/registry"
	"github.com/deskshell/deskshell/internal/window"
)

const applicationID = "io.deskshell.Deskshell"

var runFlags struct {
	id       string
	title    string
	url      string
	hidden   bool
	withTray bool
	menuBar  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch a window hosting the configured web application",
	RunE:  runShell,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.id, "id", "main", "logical window id")
	runCmd.Flags().StringVar(&runFlags.title, "title", "", "window title (defaults to id)")
	runCmd.Flags().StringVar(&runFlags.url, "url", "", "home URL to open")
	runCmd.Flags().BoolVar(&runFlags.hidden, "hidden", false, "start with the window hidden")
	runCmd.Flags().BoolVar(&runFlags.withTray, "tray", false, "add a system tray icon menu")
	runCmd.Flags().BoolVar(&runFlags.menuBar, "menubar", false, "add an in-window menu bar")
	rootCmd.AddCommand(runCmd)
}

func runShell(_ *cobra.Command, _ []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return err
	}
	cfg, err := manager.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})
	ctx := logging.WithContext(context.Background(), logger)

	manager.OnConfigChange(func(*config.Config) {
		logger.Info().Msg("configuration reloaded")
	})
	manager.Watch()

	reg := registry.New(ctx)

	app := gtk.NewApplication(applicationID, gio.ApplicationFlagsNone)

	var activateErr error
	app.ConnectActivate(func() {
		if err := activate(ctx, cfg, app, reg); err != nil {
			activateErr = err
			logger.Error().Err(err).Msg("activation failed")
			app.Quit()
		}
	})

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			reg.Quit()
			app.Quit()
		case <-reg.Done():
			app.Quit()
		case <-groupCtx.Done():
		}
		return nil
	})

	// The GTK main loop owns the calling goroutine until quit.
	code := app.Run(nil)

	reg.Quit()
	_ = group.Wait()

	if activateErr != nil {
		return activateErr
	}
	if code != 0 {
		return fmt.Errorf("gtk application exited with status %d", code)
	}
	return nil
}

// activate wires the adapters and starts the main window actor.
func activate(ctx context.Context, cfg *config.Config, app *gtk.Application, reg *registry.Registry) error {
	logger := logging.FromContext(ctx)

	toolkit, err := gtkadapter.New(ctx, app)
	if err != nil {
		return err
	}

	iconPath := filepath.Join(cfg.Window.ResourceDir, cfg.Window.Icon)

	deps := window.Deps{
		Toolkit:  toolkit,
		Notifier: pickNotifier(ctx, app.IsRegistered(), toolkit, iconPath),
		Desktop:  desktop.New(),
		Keys:     port.LoginKeyFunc(currentLoginKey),
	}

	if store, err := openStateStore(ctx, cfg); err != nil {
		logger.Warn().Err(err).Msg("window state persistence disabled")
	} else {
		deps.Store = store
	}

	opts := window.Options{
		ID:               runFlags.id,
		Title:            runFlags.title,
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		Hidden:           runFlags.hidden,
		Icon:             cfg.Window.Icon,
		WatchdogInterval: cfg.Watchdog.Interval,
	}
	if runFlags.url != "" {
		opts.URL = urldomain.Literal(runFlags.url)
	}

	if runFlags.menuBar {
		opts.MenuBar = menuBarSpec(reg)
	}
	if runFlags.withTray {
		opts.IconMenu = trayMenu(reg)
	}
	if runFlags.withTray || runFlags.menuBar {
		deps.NewTray = func(menuBar, iconMenu *port.MenuSpec) (port.Tray, error) {
			var icon *tray.Tray
			if iconMenu != nil {
				icon = tray.New(ctx, iconMenu, iconPath, opts.Title)
			}
			return newShellTray(toolkit, menuBar, icon), nil
		}
	}

	w, err := window.Start(ctx, opts, deps)
	if err != nil {
		return fmt.Errorf("start window: %w", err)
	}
	if err := reg.Register(w); err != nil {
		w.Stop()
		return err
	}

	// Keep the application alive while the actor lives; with a tray the
	// window can be hidden with no GTK window visible.
	app.Hold()
	go func() {
		<-w.Done()
		app.Release()
	}()

	return nil
}

// pickNotifier selects the notification backend. GNotification delivery
// needs the application registered on the session bus; when registration
// failed (no D-Bus, sandboxed session) notifications fall back to plain
// desktop notifications, which cannot report clicks.
func pickNotifier(ctx context.Context, registered bool, toolkit *gtkadapter.Toolkit, iconPath string) port.Notifier {
	if registered {
		return gtkadapter.NewNotifier(ctx, toolkit)
	}
	logging.FromContext(ctx).Warn().
		Msg("application not registered on the session bus, notification callbacks unavailable")
	return notify.New(iconPath)
}

func menuBarSpec(reg *registry.Registry) *port.MenuSpec {
	return &port.MenuSpec{Items: []port.MenuItemSpec{
		{Label: "File", Items: []port.MenuItemSpec{
			{Label: "Quit", OnSelect: reg.Quit},
		}},
		{Label: "Window", Items: []port.MenuItemSpec{
			{Label: "Minimize", OnSelect: func() {
				if w, ok := reg.Lookup(runFlags.id); ok {
					w.Iconize(false)
				}
			}},
			{Label: "Restore", OnSelect: func() {
				if w, ok := reg.Lookup(runFlags.id); ok {
					w.Iconize(true)
				}
			}},
		}},
	}}
}

func trayMenu(reg *registry.Registry) *port.MenuSpec {
	return &port.MenuSpec{Items: []port.MenuItemSpec{
		{Label: "Show", OnSelect: func() {
			if w, ok := reg.Lookup(runFlags.id); ok {
				w.Show()
			}
		}},
		{Separator: true},
		{Label: "Quit", OnSelect: reg.Quit},
	}}
}

func openStateStore(ctx context.Context, cfg *config.Config) (port.WindowStateStore, error) {
	path := cfg.State.Path
	if path == "" {
		var err error
		path, err = config.DefaultStatePath()
		if err != nil {
			return nil, err
		}
	}

	db, err := sqlite.NewConnection(ctx, path)
	if err != nil {
		return nil, err
	}
	return sqlite.NewWindowStateRepository(db), nil
}

// currentLoginKey returns the opaque auth token injected into shown URLs.
// Token generation itself lives outside this program.
func currentLoginKey() string {
	return os.Getenv("DESKSHELL_LOGIN_KEY")
}
