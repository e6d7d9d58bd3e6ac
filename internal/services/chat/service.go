package chat

import (
	"sync"

	"github.com/worldsmp/worlds-server/internal/model"
)

// MaxHistory bounds the in-memory chat history; oldest entries drop first.
const MaxHistory = 100

// premadeMessages is the fixed list of sendable chat presets, addressed by
// index on the wire.
var premadeMessages = []string{
	"Hello!", "GG!", "Nice!", "Help!", "Follow me!",
	"Watch out!", "Thanks!", "Good luck!", "Fight?", "Peace!",
	"Over here!", "Nice build!", "Bye!", "LOL", "Oops!",
}

// Service resolves preset chat messages and keeps a bounded rolling history.
type Service struct {
	mu      sync.RWMutex
	history []model.ChatPayload
}

// New creates an empty chat service.
func New() *Service {
	return &Service{}
}

// Presets returns the fixed preset message list.
func (s *Service) Presets() []string {
	return premadeMessages
}

// Resolve maps a preset index to its message text. Out-of-range indexes
// report false.
func (s *Service) Resolve(index int) (string, bool) {
	if index < 0 || index >= len(premadeMessages) {
		return "", false
	}
	return premadeMessages[index], true
}

// Record appends a chat line to the rolling history, dropping the oldest
// entry once MaxHistory is reached.
func (s *Service) Record(entry model.ChatPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	if len(s.history) > MaxHistory {
		s.history = s.history[len(s.history)-MaxHistory:]
	}
}

// History returns a snapshot of the recorded chat lines, oldest first.
func (s *Service) History() []model.ChatPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]model.ChatPayload, len(s.history))
	copy(history, s.history)
	return history
}
