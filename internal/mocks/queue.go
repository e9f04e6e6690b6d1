package mocks

import (
	"strings"
	"sync"
)

// MockMessageQueue records published events and registered subscribers.
// Publish is safe for concurrent use, matching the real brokers.
type MockMessageQueue struct {
	mu                sync.Mutex
	PublishedMessages map[string][][]byte
	Subscribers       map[string][]func([]byte) error

	PublishFunc   func(topic string, data []byte) error
	SubscribeFunc func(topic string, handler func([]byte) error) error
	CloseFunc     func() error
}

func NewMockMessageQueue() *MockMessageQueue {
	return &MockMessageQueue{
		PublishedMessages: make(map[string][][]byte),
		Subscribers:       make(map[string][]func([]byte) error),
	}
}

func (m *MockMessageQueue) Publish(topic string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(topic, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedMessages[topic] = append(m.PublishedMessages[topic], data)
	return nil
}

func (m *MockMessageQueue) Subscribe(topic string, handler func([]byte) error) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(topic, handler)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Subscribers[topic] = append(m.Subscribers[topic], handler)
	return nil
}

func (m *MockMessageQueue) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// GetPublishedMessages returns all messages published to a topic.
func (m *MockMessageQueue) GetPublishedMessages(topic string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PublishedMessages[topic]
}

// Deliver synchronously feeds every message published on topic to the
// subscribers whose subject matches it, honouring trailing-* wildcards.
// Returns the number of deliveries made.
func (m *MockMessageQueue) Deliver(topic string) int {
	m.mu.Lock()
	messages := m.PublishedMessages[topic]
	var handlers []func([]byte) error
	for subject, subs := range m.Subscribers {
		if subjectMatches(subject, topic) {
			handlers = append(handlers, subs...)
		}
	}
	m.mu.Unlock()

	delivered := 0
	for _, msg := range messages {
		for _, handler := range handlers {
			handler(msg)
			delivered++
		}
	}
	return delivered
}

func subjectMatches(subject, topic string) bool {
	if subject == topic {
		return true
	}
	if prefix, ok := strings.CutSuffix(subject, ".*"); ok {
		rest, ok := strings.CutPrefix(topic, prefix+".")
		return ok && !strings.Contains(rest, ".")
	}
	return false
}
