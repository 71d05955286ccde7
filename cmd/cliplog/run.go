package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/daemon"
	"go.klb.dev/cliplog/internal/ipc"
	"go.klb.dev/cliplog/internal/tui"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard history daemon",
		Long: `Starts polling the system clipboard every 500ms and records each new text
value. The history is served on a local IPC socket for "cliplog ui",
"cliplog list" and "cliplog recall". The socket also answers JSON over
HTTP/1.1:

  curl --unix-socket $XDG_RUNTIME_DIR/cliplog.sock http://cliplog/v1/history
  curl --unix-socket $XDG_RUNTIME_DIR/cliplog.sock -X POST http://cliplog/v1/history/3/recall

With --ui the interactive list runs in this process and the daemon stops when
it is closed.

Precedence (lowest → highest): defaults → config file → CLIPLOG_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runDaemon(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.String("backend", string(clip.KindAuto), "clipboard backend: auto|native|command|memory")
	f.Bool("ui", false, "show the interactive history list in this terminal")
	addSocketFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(ctx context.Context, v *viper.Viper) error {
	withUI := v.GetBool("ui")
	logCloser, err := setupLogging(v, withUI)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	kind, err := clip.ParseKind(v.GetString("backend"))
	if err != nil {
		return err
	}
	backend, err := clip.Open(kind)
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	defer backend.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := socketPath(v)
	slog.Info("cliplog daemon starting",
		"version", Version,
		"backend", backend.Name(),
		"socket", path,
	)

	var ln net.Listener
	ln, err = ipc.Listen(path)
	switch {
	case errors.Is(err, ipc.ErrRunning):
		return fmt.Errorf("another cliplog daemon is listening on %s", path)
	case err != nil:
		// The history is still useful in-process; only the CLI tools lose it.
		slog.Warn("IPC socket unavailable", "path", path, "err", err)
		ln = nil
	default:
		defer os.Remove(path)
	}

	d := daemon.New(backend, Version)
	if !withUI {
		return d.Run(ctx, ln)
	}

	return runAlongside(ctx, func(ctx context.Context) error {
		return d.Run(ctx, ln)
	}, func(ctx context.Context) error {
		return tui.Run(ctx, tui.Local(d.Service()))
	})
}

// runAlongside runs the daemon and the UI until either stops. When the UI
// quits the daemon is cancelled; when the daemon stops the UI is closed so
// it never outlives the history it shows.
func runAlongside(ctx context.Context, daemonFn, uiFn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := daemonFn(ctx)
		if err != nil {
			slog.Error("daemon stopped, closing the UI", "err", err)
		}
		cancel()
		done <- err
	}()

	uiErr := uiFn(ctx)
	cancel()
	return errors.Join(uiErr, <-done)
}
