package copilot

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

// Service constants
const (
	// askInactivityTimeout bounds the wait for the next output event
	// while a response streams. It resets on every event, so long
	// responses are fine as long as the CLI keeps producing output.
	askInactivityTimeout = 60 * time.Second

	// stopTimeout is how long Stop waits for a graceful exit after
	// closing stdin before killing the process.
	stopTimeout = 2 * time.Second

	// eventChannelBuffer absorbs bursts of streamed deltas while the
	// collector is between reads.
	eventChannelBuffer = 64
)

// Session event types produced by the CLI in stdio mode.
const (
	eventDelta   = "assistant_message_delta"
	eventMessage = "assistant_message"
	eventIdle    = "session_idle"
	eventError   = "session_error"
)

// sessionEvent is one line of CLI stdout in stdio mode.
type sessionEvent struct {
	Type    string `json:"type"`
	Delta   string `json:"delta,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// promptMessage is one prompt line written to CLI stdin.
type promptMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// buildArgs returns the CLI arguments for programmatic stdio mode
// with the reading-assistant system prompt.
func buildArgs() []string {
	return []string{
		"--stdio",
		"--system-prompt", systemPrompt,
	}
}

// Service manages a long-lived Copilot CLI subprocess. One prompt is
// in flight at a time; the CLI holds the conversation session.
type Service struct {
	mu       sync.Mutex // guards process state below
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	events   chan sessionEvent
	running  bool
	waitDone chan struct{}

	askMu sync.Mutex // serializes Ask calls

	log *slog.Logger
}

// NewService creates a service without starting the CLI.
func NewService() *Service {
	return &Service{
		log: logger.ComponentLogger("Copilot"),
	}
}

// Start probes availability and spawns the CLI process. Calling Start
// while already running is a no-op.
func (s *Service) Start() error {
	const op = errors.Op("copilot.Start")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Debug("copilot client already running")
		return nil
	}

	availability := CheckAvailability()
	s.log.Debug("availability",
		"cli_installed", availability.CLIInstalled,
		"cli_authenticated", availability.CLIAuthenticated,
		"available", availability.Available)

	if !availability.CLIInstalled {
		return errors.E(op, errors.KindNotFound, MsgNotInstalled)
	}
	if !availability.CLIAuthenticated {
		return errors.E(op, errors.KindPermission, MsgNotAuthenticated)
	}

	name, leading := cliCommand()
	args := append(leading, buildArgs()...)
	s.log.Debug("starting copilot client", "binary", name)

	cmd := exec.Command(name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.CopilotStartFailed(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return errors.CopilotStartFailed(err)
	}
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return errors.CopilotStartFailed(err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.events = make(chan sessionEvent, eventChannelBuffer)
	s.waitDone = make(chan struct{})
	s.running = true

	go s.readEvents(bufio.NewReader(stdout), s.events)
	go s.monitorExit(cmd, &stderrBuf, s.waitDone)

	s.log.Info("copilot client started", "pid", cmd.Process.Pid)
	return nil
}

// Stop shuts the CLI process down, killing it if it does not exit
// promptly after stdin closes. Safe to call when not running.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cmd := s.cmd
	stdin := s.stdin
	waitDone := s.waitDone
	s.cmd = nil
	s.stdin = nil
	s.mu.Unlock()

	s.log.Info("stopping copilot client")

	// Closing stdin asks the CLI to exit.
	if stdin != nil {
		stdin.Close()
	}

	select {
	case <-waitDone:
		s.log.Debug("copilot process exited gracefully")
	case <-time.After(stopTimeout):
		s.log.Debug("force killing copilot process")
		if cmd != nil && cmd.Process != nil {
			cmd.Process.Kill()
		}
		<-waitDone
	}

	s.log.Info("copilot client stopped")
}

// Running reports whether the CLI process is up.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Ask sends one prompt and accumulates the streamed response until
// the session goes idle.
func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	const op = errors.Op("copilot.Ask")

	s.askMu.Lock()
	defer s.askMu.Unlock()

	s.mu.Lock()
	running := s.running
	stdin := s.stdin
	events := s.events
	s.mu.Unlock()

	if !running || stdin == nil {
		return "", errors.CopilotNotRunning()
	}

	data, err := json.Marshal(promptMessage{Type: "prompt", Content: prompt})
	if err != nil {
		return "", errors.E(op, errors.KindInvalid, err)
	}
	if _, err := stdin.Write(append(data, '\n')); err != nil {
		return "", errors.E(op, errors.KindCopilot, "failed to send prompt", err)
	}

	s.log.Debug("prompt sent", "chars", len(prompt))

	content, err := collectResponse(ctx, events, askInactivityTimeout)
	if err != nil {
		return "", err
	}
	s.log.Info("copilot response received", "chars", len(content))
	return content, nil
}

// readEvents turns CLI stdout lines into session events. It exits on
// EOF, which happens when the process dies or Stop closes stdin.
func (s *Service) readEvents(reader *bufio.Reader, events chan<- sessionEvent) {
	defer close(events)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.log.Debug("stdout read error", "error", err)
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var ev sessionEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			s.log.Debug("skipping unparseable output line", "error", err)
			continue
		}
		events <- ev
	}
}

// monitorExit is the sole caller of cmd.Wait. An exit the service did
// not initiate marks it stopped so the next Ask fails fast instead of
// writing to a dead pipe.
func (s *Service) monitorExit(cmd *exec.Cmd, stderrBuf *bytes.Buffer, waitDone chan struct{}) {
	err := cmd.Wait()
	close(waitDone)

	s.mu.Lock()
	unexpected := s.running && s.cmd == cmd
	if unexpected {
		s.running = false
		s.cmd = nil
		s.stdin = nil
	}
	s.mu.Unlock()

	if unexpected {
		stderr := strings.TrimSpace(stderrBuf.String())
		s.log.Warn("copilot process exited unexpectedly", "error", err, "stderr", stderr)
	}
}

// collectResponse accumulates streamed events into a full response.
// Deltas are concatenated; a complete message only counts when no
// deltas arrived first. The inactivity window restarts on every
// event.
func collectResponse(ctx context.Context, events <-chan sessionEvent, inactivity time.Duration) (string, error) {
	const op = errors.Op("copilot.Ask")

	var b strings.Builder
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return "", errors.E(op, errors.KindCopilot, "copilot process exited mid-response")
			}
			switch ev.Type {
			case eventDelta:
				b.WriteString(ev.Delta)
			case eventMessage:
				if b.Len() == 0 {
					b.WriteString(ev.Content)
				}
			case eventIdle:
				return b.String(), nil
			case eventError:
				return "", errors.E(op, errors.KindCopilot, ev.Message)
			}
		case <-ctx.Done():
			return "", errors.E(op, errors.KindTimeout, ctx.Err())
		case <-time.After(inactivity):
			return "", errors.CopilotTimeout()
		}
	}
}
