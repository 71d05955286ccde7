// Package api defines the cliplog.v1.History gRPC service spoken over the
// local IPC socket.
//
// Messages are plain Go structs carried by a JSON codec (content-subtype
// "json"), so the service descriptor below is written by hand instead of
// being generated from a .proto file.
package api

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"go.klb.dev/cliplog/internal/history"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "cliplog.v1.History"

const (
	listMethod   = "/" + ServiceName + "/List"
	recallMethod = "/" + ServiceName + "/Recall"
	statusMethod = "/" + ServiceName + "/Status"
)

// ListRequest asks for the whole history.
type ListRequest struct{}

// ListResponse carries the history, oldest first.
type ListResponse struct {
	Entries []history.Entry `json:"entries"`
}

// RecallRequest names the entry to copy back to the clipboard.
type RecallRequest struct {
	Index int `json:"index"`
}

// RecallResponse returns the entry that was written to the clipboard.
type RecallResponse struct {
	Entry history.Entry `json:"entry"`
}

// StatusRequest asks for daemon metadata.
type StatusRequest struct{}

// StatusResponse describes the running daemon and its history size.
type StatusResponse struct {
	Version   string    `json:"version"`
	Backend   string    `json:"backend"`
	Entries   int       `json:"entries"`
	Capacity  int       `json:"capacity"`
	StartedAt time.Time `json:"started_at"`
}

// HistoryServer is implemented by the daemon.
type HistoryServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	Recall(context.Context, *RecallRequest) (*RecallResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
}

// RegisterHistoryServer registers srv on s.
func RegisterHistoryServer(s grpc.ServiceRegistrar, srv HistoryServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HistoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: listHandler},
		{MethodName: "Recall", Handler: recallHandler},
		{MethodName: "Status", Handler: statusHandler},
	},
	Metadata: "cliplog/v1/history",
}

func listHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HistoryServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(HistoryServer).List(ctx, req.(*ListRequest))
	})
}

func recallHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RecallRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HistoryServer).Recall(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: recallMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(HistoryServer).Recall(ctx, req.(*RecallRequest))
	})
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HistoryServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: statusMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(HistoryServer).Status(ctx, req.(*StatusRequest))
	})
}

// HistoryClient is the client side of the History service.
type HistoryClient struct {
	cc grpc.ClientConnInterface
}

// NewHistoryClient wraps cc. Calls are sent with the JSON codec.
func NewHistoryClient(cc grpc.ClientConnInterface) *HistoryClient {
	return &HistoryClient{cc: cc}
}

func (c *HistoryClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.cc.Invoke(ctx, listMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HistoryClient) Recall(ctx context.Context, in *RecallRequest, opts ...grpc.CallOption) (*RecallResponse, error) {
	out := new(RecallResponse)
	if err := c.cc.Invoke(ctx, recallMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HistoryClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, statusMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}

// ── codec ──────────────────────────────────────────────────────────────────

const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
