package tui

import (
	"context"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/service"
)

// Source is what the UI renders and recalls from.
type Source interface {
	// List returns the history, oldest first.
	List(ctx context.Context) ([]history.Entry, error)
	// Recall copies entry index back to the system clipboard. A stale index
	// yields an error wrapping history.ErrNotFound.
	Recall(ctx context.Context, index int) (history.Entry, error)
}

// Local returns a Source backed by an in-process service.
func Local(svc *service.Service) Source { return localSource{svc} }

type localSource struct{ svc *service.Service }

func (s localSource) List(context.Context) ([]history.Entry, error) {
	return s.svc.Entries(), nil
}

func (s localSource) Recall(ctx context.Context, index int) (history.Entry, error) {
	return s.svc.RecallIndex(ctx, index)
}

// Remote returns a Source talking to a daemon over IPC.
func Remote(c *api.HistoryClient) Source { return remoteSource{c} }

type remoteSource struct{ c *api.HistoryClient }

func (s remoteSource) List(ctx context.Context) ([]history.Entry, error) {
	resp, err := s.c.List(ctx, &api.ListRequest{})
	if err != nil {
		return nil, service.FromStatus(err)
	}
	return resp.Entries, nil
}

func (s remoteSource) Recall(ctx context.Context, index int) (history.Entry, error) {
	resp, err := s.c.Recall(ctx, &api.RecallRequest{Index: index})
	if err != nil {
		return history.Entry{}, service.FromStatus(err)
	}
	return resp.Entry, nil
}
