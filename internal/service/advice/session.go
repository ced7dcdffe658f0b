package advice

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Greeting opens every assistant session.
const Greeting = "Hello! I am your Vogue & Verve personal stylist. How can I help you today?"

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "ai"
)

type Message struct {
	Role Speaker `json:"role"`
	Text string  `json:"text"`
}

// Session is one shopper's conversation with the stylist. Replies arrive
// asynchronously; once the session is closed, late replies are dropped.
type Session struct {
	client *Client
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	messages []Message
	pending  int
	closed   bool
}

// NewSession starts a conversation bound to parent.
func (c *Client) NewSession(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		client:   c,
		ctx:      ctx,
		cancel:   cancel,
		messages: []Message{{Role: SpeakerAssistant, Text: Greeting}},
	}
}

// Send records the shopper's message and requests a reply in the background.
// Blank messages and sends after Close are ignored and return false.
func (s *Session) Send(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.messages = append(s.messages, Message{Role: SpeakerUser, Text: text})
	s.pending++
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		reply := s.client.FashionAdvice(s.ctx, text)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending--
		if s.closed {
			return
		}
		s.messages = append(s.messages, Message{Role: SpeakerAssistant, Text: reply})
	}()
	return true
}

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// Waiting reports whether any reply is still outstanding.
func (s *Session) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// Wait blocks until every outstanding reply has arrived or been dropped.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels outstanding requests and waits for their goroutines to exit.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
