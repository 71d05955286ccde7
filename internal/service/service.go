// Package service implements listing and recall over the history store, both
// in-process and as the cliplog.v1.History gRPC server.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
)

// Service implements api.HistoryServer.
type Service struct {
	store     *history.Store
	clipboard clip.Writer
	backend   string
	version   string
	startedAt time.Time
}

// New returns a Service reading from store and recalling into w. backend and
// version are only reported by Status.
func New(store *history.Store, w clip.Writer, backend, version string) *Service {
	return &Service{
		store:     store,
		clipboard: w,
		backend:   backend,
		version:   version,
		startedAt: time.Now(),
	}
}

// Entries returns the current history, oldest first.
func (s *Service) Entries() []history.Entry {
	return s.store.Snapshot()
}

// RecallIndex looks up entry index and writes its content to the system
// clipboard. The store lock is released before the clipboard is touched, and
// a stale index leaves the clipboard unchanged.
func (s *Service) RecallIndex(ctx context.Context, index int) (history.Entry, error) {
	e, err := s.store.Recall(index)
	if err != nil {
		return history.Entry{}, err
	}
	if err := ctx.Err(); err != nil {
		return history.Entry{}, err
	}
	if err := s.clipboard.WriteText(e.Content); err != nil {
		if !errors.Is(err, clip.ErrWrite) {
			err = errors.Join(clip.ErrWrite, err)
		}
		return history.Entry{}, err
	}
	slog.Info("entry recalled", "index", index, "captured", e.Time())
	return e, nil
}

// Info reports daemon metadata and the current history size.
func (s *Service) Info() api.StatusResponse {
	return api.StatusResponse{
		Version:   s.version,
		Backend:   s.backend,
		Entries:   s.store.Len(),
		Capacity:  s.store.Cap(),
		StartedAt: s.startedAt,
	}
}

// List implements api.HistoryServer.
func (s *Service) List(_ context.Context, _ *api.ListRequest) (*api.ListResponse, error) {
	return &api.ListResponse{Entries: s.Entries()}, nil
}

// Recall implements api.HistoryServer.
func (s *Service) Recall(ctx context.Context, req *api.RecallRequest) (*api.RecallResponse, error) {
	e, err := s.RecallIndex(ctx, req.Index)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			slog.Debug("recall of stale index ignored", "index", req.Index)
		} else {
			slog.Error("recall failed", "index", req.Index, "err", err)
		}
		return nil, ToStatus(err)
	}
	return &api.RecallResponse{Entry: e}, nil
}

// Status implements api.HistoryServer.
func (s *Service) Status(_ context.Context, _ *api.StatusRequest) (*api.StatusResponse, error) {
	info := s.Info()
	return &info, nil
}

// Error reasons attached to gRPC status errors as errdetails.ErrorInfo.
const (
	errorDomain        = "cliplog"
	reasonNotFound     = "ENTRY_NOT_FOUND"
	reasonWriteFailure = "CLIPBOARD_WRITE_FAILED"
)

// ToStatus converts a service error into a gRPC status error.
func ToStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, history.ErrNotFound):
		return withReason(codes.NotFound, err, reasonNotFound)
	case errors.Is(err, clip.ErrWrite):
		return withReason(codes.Unavailable, err, reasonWriteFailure)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func withReason(code codes.Code, err error, reason string) error {
	st := status.New(code, err.Error())
	if ds, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}); derr == nil {
		st = ds
	}
	return st.Err()
}

// FromStatus is the inverse of ToStatus for clients: errors the daemon tagged
// come back wrapping history.ErrNotFound or clip.ErrWrite. Transport errors,
// such as Unavailable from a daemon that is not running, pass through.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		switch info.GetReason() {
		case reasonNotFound:
			return errors.Join(history.ErrNotFound, err)
		case reasonWriteFailure:
			return errors.Join(clip.ErrWrite, err)
		}
	}
	return err
}
