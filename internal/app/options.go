package app

import (
	"github.com/pastelhq/pastel/internal/assistant"
	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/ui"
)

// Option configures the app model at construction. Options exist mainly
// so tests can inject fakes for the network-facing pieces.
type Option func(*Model)

// WithHNClient injects the Hacker News client.
func WithHNClient(client *hn.Client) Option {
	return func(m *Model) {
		m.hnClient = client
	}
}

// WithAssistantClient builds the assistant panel around the given client.
func WithAssistantClient(client *assistant.Client) Option {
	return func(m *Model) {
		m.panel = ui.NewAssistantPanel(client)
	}
}
