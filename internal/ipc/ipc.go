// Package ipc provides the local Unix-socket channel used by the list,
// recall, status and ui sub-commands to talk to a running cliplog daemon.
//
// The socket carries the cliplog.v1.History gRPC service. The daemon also
// answers plain HTTP/1.1 JSON requests on the same socket, for scripts that
// would rather use curl --unix-socket than a gRPC client.
package ipc

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// SocketEnv overrides the socket path.
const SocketEnv = "CLIPLOG_SOCKET"

const socketName = "cliplog.sock"

// SocketPath returns the IPC socket path:
//
//   - $CLIPLOG_SOCKET if set
//   - $XDG_RUNTIME_DIR/cliplog.sock on Linux desktops
//   - $TMPDIR/cliplog.sock otherwise
func SocketPath() string {
	if s := os.Getenv(SocketEnv); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// IsRunning reports whether a daemon appears to be listening on path. It does
// a cheap dial-and-close; no data is exchanged.
func IsRunning(path string) bool {
	c, err := net.Dial("unix", path)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// ErrRunning is returned by Listen when another daemon owns the socket.
var ErrRunning = errors.New("ipc: daemon already running")

// Listen creates a listener on path, removing a stale socket left by a
// crashed run. The socket is restricted to the current user.
func Listen(path string) (net.Listener, error) {
	if IsRunning(path) {
		return nil, ErrRunning
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return nil, err
	}
	return ln, nil
}

// Dial returns a gRPC client connection to the daemon on path. No auth is
// needed: the socket is local and owner-restricted.
func Dial(path string) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		"unix://"+path,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}
