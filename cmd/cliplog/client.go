package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/ipc"
)

const requestTimeout = 5 * time.Second

var errNoDaemon = errors.New("no cliplog daemon running (start one with \"cliplog run\")")

// dialDaemon connects to the daemon on the configured socket. The caller
// closes the returned connection.
func dialDaemon(v *viper.Viper) (*api.HistoryClient, *grpc.ClientConn, error) {
	path := socketPath(v)
	if !ipc.IsRunning(path) {
		return nil, nil, fmt.Errorf("%w: %s", errNoDaemon, path)
	}
	conn, err := ipc.Dial(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return api.NewHistoryClient(conn), conn, nil
}

func requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}
