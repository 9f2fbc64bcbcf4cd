// Package sink defines the delivery surface for karma messages. The
// pipeline produces finished lines; a sink gets them to a chat target.
package sink

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/karmabot/karmalog/internal/feed"
)

// Sink delivers already-formatted message lines to one target.
type Sink interface {
	Name() string
	Deliver(target feed.Target, lines []string) error
}

// LogSink writes messages to the process log instead of a chat
// network. Useful as the default until a real transport is composed in.
type LogSink struct {
	logger *logrus.Logger
}

// NewLogSink builds a log-backed sink.
func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(target feed.Target, lines []string) error {
	entry := s.logger.WithFields(logrus.Fields{
		"network": target.Network,
		"channel": target.Channel,
	})
	for _, line := range lines {
		entry.Info(line)
	}
	return nil
}

// MemorySink collects delivered lines per target, for tests and dry
// runs.
type MemorySink struct {
	mu       sync.Mutex
	messages map[feed.Target][]string
}

// NewMemorySink builds an in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{messages: make(map[feed.Target][]string)}
}

func (s *MemorySink) Name() string { return "memory" }

func (s *MemorySink) Deliver(target feed.Target, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[target] = append(s.messages[target], lines...)
	return nil
}

// Lines returns the lines delivered to a target so far.
func (s *MemorySink) Lines(target feed.Target) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.messages[target]))
	copy(lines, s.messages[target])
	return lines
}
