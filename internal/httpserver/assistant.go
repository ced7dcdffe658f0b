package httpserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront/internal/domain"
	"storefront/internal/service/advice"
)

const (
	// assistantIdleTTL is how long a session may go unread before it is closed.
	assistantIdleTTL     = 30 * time.Minute
	assistantMaxSessions = 1000
)

var errTooManySessions = errors.New("too many open assistant sessions")

type assistantEntry struct {
	session  *advice.Session
	lastSeen time.Time
}

type assistantRegistry struct {
	client  *advice.Client
	idleTTL time.Duration
	max     int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*assistantEntry
}

func newAssistantRegistry(client *advice.Client) *assistantRegistry {
	return &assistantRegistry{
		client:   client,
		idleTTL:  assistantIdleTTL,
		max:      assistantMaxSessions,
		now:      time.Now,
		sessions: make(map[string]*assistantEntry),
	}
}

// sweepLocked drops sessions idle for longer than idleTTL and returns them so the
// caller can close them after releasing the lock.
func (r *assistantRegistry) sweepLocked(now time.Time) []*advice.Session {
	var expired []*advice.Session
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.idleTTL {
			expired = append(expired, e.session)
			delete(r.sessions, id)
		}
	}
	return expired
}

func closeSessions(sessions []*advice.Session) {
	for _, s := range sessions {
		s.Close()
	}
}

func (r *assistantRegistry) open() (string, *advice.Session, error) {
	r.mu.Lock()
	now := r.now()
	expired := r.sweepLocked(now)
	if len(r.sessions) >= r.max {
		r.mu.Unlock()
		closeSessions(expired)
		return "", nil, errTooManySessions
	}
	id := uuid.NewString()
	s := r.client.NewSession(context.Background())
	r.sessions[id] = &assistantEntry{session: s, lastSeen: now}
	r.mu.Unlock()
	closeSessions(expired)
	return id, s, nil
}

// get returns a live session and marks it as seen.
func (r *assistantRegistry) get(id string) (*advice.Session, bool) {
	r.mu.Lock()
	now := r.now()
	expired := r.sweepLocked(now)
	e, ok := r.sessions[id]
	if ok {
		e.lastSeen = now
	}
	r.mu.Unlock()
	closeSessions(expired)
	if !ok {
		return nil, false
	}
	return e.session, true
}

func (r *assistantRegistry) close(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		e.session.Close()
	}
	return ok
}

func (r *assistantRegistry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*assistantEntry)
	r.mu.Unlock()
	for _, e := range sessions {
		e.session.Close()
	}
}

type assistantResponse struct {
	ID       string           `json:"id"`
	Messages []advice.Message `json:"messages"`
	Waiting  bool             `json:"waiting"`
}

type assistantMessageRequest struct {
	Text string `json:"text"`
}

func sessionView(id string, s *advice.Session) assistantResponse {
	return assistantResponse{ID: id, Messages: s.Messages(), Waiting: s.Waiting()}
}

func (h *handler) openAssistant(c *gin.Context) {
	id, s, err := h.assistant.open()
	if err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sessionView(id, s))
}

func (h *handler) getAssistant(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.assistant.get(id)
	if !ok {
		writeError(c, h, "get assistant", domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, sessionView(id, s))
}

// sendAssistantMessage queues the question; the reply shows up on a later GET.
func (h *handler) sendAssistantMessage(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.assistant.get(id)
	if !ok {
		writeError(c, h, "assistant message", domain.ErrNotFound)
		return
	}
	var req assistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if !s.Send(req.Text) {
		badRequest(c, "message is empty")
		return
	}
	c.JSON(http.StatusAccepted, sessionView(id, s))
}

func (h *handler) closeAssistant(c *gin.Context) {
	if !h.assistant.close(c.Param("id")) {
		writeError(c, h, "close assistant", domain.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
