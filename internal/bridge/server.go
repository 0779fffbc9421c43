package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pastelhq/pastel/internal/logger"
)

// Handler executes one command on the host and returns its result,
// which is JSON-encoded into the response.
type Handler interface {
	Handle(ctx context.Context, command string, args json.RawMessage) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, command string, args json.RawMessage) (any, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, command string, args json.RawMessage) (any, error) {
	return f(ctx, command, args)
}

// Server listens on a unix socket and dispatches request lines to a
// Handler. It is the host half of the bridge; the TUI connects with a
// SocketInvoker.
type Server struct {
	socketPath string
	listener   net.Listener
	handler    Handler
	log        *slog.Logger

	closed   bool
	closedMu sync.RWMutex
	wg       sync.WaitGroup
}

// NewServer creates a server listening on the unix socket at
// socketPath. A stale socket file from a previous run is removed
// first.
func NewServer(socketPath string, handler Handler) (*Server, error) {
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		handler:    handler,
		log:        logger.ComponentLogger("Host"),
	}, nil
}

// Start begins accepting connections in a background goroutine.
func (s *Server) Start() {
	s.wg.Add(1)
	go s.run()
}

// SocketPath returns the path the server is listening on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) isClosed() bool {
	s.closedMu.RLock()
	defer s.closedMu.RUnlock()
	return s.closed
}

func (s *Server) run() {
	defer s.wg.Done()

	s.log.Info("listening", "socket", s.socketPath)

	for {
		if s.isClosed() {
			return
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if strings.Contains(err.Error(), "use of closed network connection") {
				return
			}
			s.log.Error("accept error", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		if s.isClosed() {
			return
		}

		// Bounded read so the loop can notice Close even when the
		// client goes quiet.
		conn.SetReadDeadline(time.Now().Add(SocketReadTimeout))

		line, err := reader.ReadString('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if err == io.EOF {
				return
			}
			s.log.Error("read error", "error", err)
			return
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.log.Error("malformed request", "error", err)
			s.sendResponse(conn, Response{Error: "malformed request: " + err.Error()})
			continue
		}

		s.log.Debug("handling request", "command", req.Command, "id", req.ID)
		s.sendResponse(conn, s.execute(req))
	}
}

// execute runs one command through the handler with a bounded
// lifetime and shapes the outcome into a Response.
func (s *Server) execute(req Request) Response {
	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()

	result, err := s.handler.Handle(ctx, req.Command, req.Args)
	if err != nil {
		s.log.Warn("command failed", "command", req.Command, "error", err)
		return Response{ID: req.ID, Error: err.Error()}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return Response{ID: req.ID, Error: "failed to encode result: " + err.Error()}
	}
	return Response{ID: req.ID, Result: data}
}

func (s *Server) sendResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to encode response", "error", err)
		return
	}

	conn.SetWriteDeadline(time.Now().Add(SocketWriteTimeout))
	if _, err := conn.Write(append(data, '\n')); err != nil {
		s.log.Error("failed to write response", "id", resp.ID, "error", err)
	}
}

// Close stops accepting connections, waits for in-flight handlers to
// finish, and removes the socket file.
func (s *Server) Close() error {
	s.closedMu.Lock()
	if s.closed {
		s.closedMu.Unlock()
		return nil
	}
	s.closed = true
	s.closedMu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)

	s.log.Info("stopped", "socket", s.socketPath)
	return err
}
