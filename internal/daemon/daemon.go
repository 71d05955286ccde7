// Package daemon wires the history store, the clipboard poller and the IPC
// servers into one long-running process.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/poller"
	"go.klb.dev/cliplog/internal/service"
)

const shutdownTimeout = 2 * time.Second

// Daemon owns the history and everything that reads or writes it.
type Daemon struct {
	store   *history.Store
	backend clip.Backend
	poller  *poller.Poller
	svc     *service.Service
}

// New returns a Daemon recording from backend into a history of
// history.MaxEntries entries.
func New(backend clip.Backend, version string) *Daemon {
	store := history.New(history.MaxEntries)
	return &Daemon{
		store:   store,
		backend: backend,
		poller:  poller.New(backend, store),
		svc:     service.New(store, backend, backend.Name(), version),
	}
}

// Service returns the in-process service, used by the embedded UI.
func (d *Daemon) Service() *service.Service { return d.svc }

// Run polls the clipboard and serves the IPC socket ln until ctx is
// cancelled. gRPC (HTTP/2) and JSON (HTTP/1.1) requests share ln.
// A nil ln runs the poller only. Run returns nil on a clean shutdown.
func (d *Daemon) Run(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return ignoreClosed(d.poller.Run(ctx)) })

	if ln != nil {
		d.serve(ctx, g, ln)
	}

	err := g.Wait()
	slog.Info("daemon stopped", "err", err)
	return err
}

func (d *Daemon) serve(ctx context.Context, g *errgroup.Group, ln net.Listener) {
	m := cmux.New(ln)
	// grpc-go clients wait for the server SETTINGS frame before sending
	// headers, so the matcher has to write one.
	grpcL := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldPrefixSendSettings("content-type", "application/grpc"))
	httpL := m.Match(cmux.HTTP1Fast())

	grpcSrv := grpc.NewServer()
	api.RegisterHistoryServer(grpcSrv, d.svc)
	httpSrv := &http.Server{
		Handler:           NewHandler(d.svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("IPC socket listening", "addr", ln.Addr().String())

	g.Go(func() error { return ignoreClosed(grpcSrv.Serve(grpcL)) })
	g.Go(func() error { return ignoreClosed(httpSrv.Serve(httpL)) })
	g.Go(func() error { return ignoreClosed(m.Serve()) })
	g.Go(func() error {
		<-ctx.Done()
		grpcSrv.Stop()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(sctx)
		_ = ln.Close()
		return nil
	})
}

// ignoreClosed drops the errors servers and loops return when shut down.
func ignoreClosed(err error) error {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, http.ErrServerClosed),
		errors.Is(err, grpc.ErrServerStopped),
		errors.Is(err, cmux.ErrListenerClosed),
		errors.Is(err, cmux.ErrServerClosed),
		errors.Is(err, net.ErrClosed):
		return nil
	}
	return err
}
