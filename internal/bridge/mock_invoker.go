package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockInvoker is a configurable Invoker for tests. It returns canned
// results per command without touching any socket.
type MockInvoker struct {
	mu        sync.Mutex
	responses map[string][]mockResult
	calls     []MockCall
	failErr   error
}

// MockCall records one Invoke for later inspection.
type MockCall struct {
	Command string
	Args    json.RawMessage
}

type mockResult struct {
	result json.RawMessage
	err    error
}

// Compile-time check that MockInvoker satisfies Invoker.
var _ Invoker = (*MockInvoker)(nil)

// NewMockInvoker creates a mock with no responses queued.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		responses: make(map[string][]mockResult),
	}
}

// QueueResult queues v as the next result for command. Results are
// consumed in FIFO order per command.
func (m *MockInvoker) QueueResult(command string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("MockInvoker: cannot encode result for %s: %v", command, err))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = append(m.responses[command], mockResult{result: data})
}

// QueueError queues err as the next outcome for command.
func (m *MockInvoker) QueueError(command string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = append(m.responses[command], mockResult{err: err})
}

// FailWith makes every Invoke return err, regardless of queued
// responses. Passing nil restores normal behavior.
func (m *MockInvoker) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Invoke records the call and pops the next queued response for
// command. Invoking a command with nothing queued is an error.
func (m *MockInvoker) Invoke(ctx context.Context, command string, args any) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		rawArgs = data
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Command: command, Args: rawArgs})

	if m.failErr != nil {
		return nil, m.failErr
	}

	queue := m.responses[command]
	if len(queue) == 0 {
		return nil, fmt.Errorf("MockInvoker: no response queued for %s", command)
	}
	next := queue[0]
	m.responses[command] = queue[1:]
	return next.result, next.err
}

// Calls returns a copy of all recorded calls in order.
func (m *MockInvoker) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times command was invoked.
func (m *MockInvoker) CallCount(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Command == command {
			n++
		}
	}
	return n
}

// Reset clears all queued responses and recorded calls.
func (m *MockInvoker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string][]mockResult)
	m.calls = nil
	m.failErr = nil
}
