package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

// SocketPathEnv overrides the host socket location when set. Useful
// for tests and for running more than one host on a machine.
const SocketPathEnv = "PASTEL_HOST_SOCKET"

// DefaultSocketPath returns the conventional host socket location.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "pastel-host.sock")
}

// Detect returns the path of a live host socket, or "" when no host
// is running. A path only counts if something is actually listening
// there as a socket; a stale regular file does not.
func Detect() string {
	path := os.Getenv(SocketPathEnv)
	if path == "" {
		path = DefaultSocketPath()
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.Mode()&os.ModeSocket == 0 {
		return ""
	}
	return path
}

// Invoker sends one command to the assistant host and returns the raw
// result payload. Implementations must be safe for concurrent use.
type Invoker interface {
	Invoke(ctx context.Context, command string, args any) (json.RawMessage, error)
}

// SocketInvoker talks to a `pastel host` process over its unix
// socket. Every invoke opens a fresh connection carrying one request
// line and one response line, so a restarted host serves the next
// request without any reconnect bookkeeping here.
type SocketInvoker struct {
	socketPath string
	log        interface {
		Debug(msg string, args ...any)
	}
}

// Compile-time check that SocketInvoker satisfies Invoker.
var _ Invoker = (*SocketInvoker)(nil)

// NewSocketInvoker creates an invoker for the host socket at path.
func NewSocketInvoker(path string) *SocketInvoker {
	return &SocketInvoker{
		socketPath: path,
		log:        logger.ComponentLogger("Bridge"),
	}
}

// Invoke sends command with args to the host and waits for the
// response. The args value is JSON-encoded; a nil args sends no
// payload. A Response carrying an Error becomes a KindBridge error.
func (s *SocketInvoker) Invoke(ctx context.Context, command string, args any) (json.RawMessage, error) {
	const op = errors.Op("bridge.Invoke")

	var rawArgs json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, errors.E(op, errors.KindInvalid, "failed to encode args", err)
		}
		rawArgs = data
	}

	req := Request{
		ID:      uuid.NewString(),
		Command: command,
		Args:    rawArgs,
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalid, err)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", s.socketPath)
	if err != nil {
		return nil, errors.BridgeDialFailed(s.socketPath, err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(SocketWriteTimeout))
	if _, err := conn.Write(append(reqJSON, '\n')); err != nil {
		return nil, errors.BridgeRequestFailed(command, err)
	}

	// Generation can take a long time, so the read deadline is the
	// generous ResponseTimeout unless the caller's context expires
	// sooner.
	readDeadline := time.Now().Add(ResponseTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(readDeadline) {
		readDeadline = d
	}
	conn.SetReadDeadline(readDeadline)

	s.log.Debug("sending request", "command", command, "id", req.ID)

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return nil, errors.BridgeRequestFailed(command, err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return nil, errors.E(op, errors.KindBridge, "malformed response from host", err)
	}

	if resp.Error != "" {
		return nil, errors.E(op, errors.KindBridge, resp.Error)
	}

	s.log.Debug("received response", "command", command, "id", resp.ID)
	return resp.Result, nil
}
