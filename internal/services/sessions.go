package services

import (
	"sync"
	"time"

	"weather-lookup/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the page state of one visitor: display slots, chat log and
// background. It lives in memory only.
type Session struct {
	ID string

	mu         sync.Mutex
	slots      map[models.Slot]string
	chat       []models.ChatLogEntry
	scrollTop  int
	background string
}

type Snapshot struct {
	ID         string                 `json:"id"`
	Slots      map[models.Slot]string `json:"slots"`
	Chat       []models.ChatLogEntry  `json:"chat"`
	ScrollTop  int                    `json:"scroll_top"`
	Background string                 `json:"background,omitempty"`
}

func newSession(id string) *Session {
	return &Session{
		ID:    id,
		slots: make(map[models.Slot]string, len(models.Slots)),
	}
}

// Run gives fn exclusive use of the session. Activations on the same
// session never interleave.
func (s *Session) Run(fn func(RenderTarget)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(sessionTarget{s})
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[models.Slot]string, len(s.slots))
	for k, v := range s.slots {
		slots[k] = v
	}
	chat := make([]models.ChatLogEntry, len(s.chat))
	copy(chat, s.chat)

	return Snapshot{
		ID:         s.ID,
		Slots:      slots,
		Chat:       chat,
		ScrollTop:  s.scrollTop,
		Background: s.background,
	}
}

func (s Snapshot) Slot(slot models.Slot) string {
	return s.Slots[slot]
}

// Recent returns the last k chat entries, oldest first.
func (s Snapshot) Recent(k int) []models.ChatLogEntry {
	if k <= 0 {
		return []models.ChatLogEntry{}
	}
	if k > len(s.Chat) {
		k = len(s.Chat)
	}
	return s.Chat[len(s.Chat)-k:]
}

// sessionTarget is only handed out inside Run, while the session lock is held.
type sessionTarget struct {
	s *Session
}

func (t sessionTarget) SetSlot(slot models.Slot, text string) {
	t.s.slots[slot] = text
}

func (t sessionTarget) AppendChat(entry models.ChatLogEntry) {
	t.s.chat = append(t.s.chat, entry)
}

func (t sessionTarget) ScrollChatToBottom() {
	t.s.scrollTop = len(t.s.chat)
}

func (t sessionTarget) SetBackground(image string) {
	t.s.background = image
}

type sessionItem struct {
	session   *Session
	ExpiresAt time.Time
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionItem
	logger   *zap.Logger
	ttl      time.Duration
	maxSize  int
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration, maxSize int, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionItem),
		logger:   logger,
		ttl:      ttl,
		maxSize:  maxSize,
		now:      time.Now,
	}
}

func (c *SessionStore) Create() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict if store is full
	if c.maxSize > 0 && len(c.sessions) >= c.maxSize {
		c.evictOldest()
	}

	sess := newSession(uuid.NewString())
	c.sessions[sess.ID] = sessionItem{
		session:   sess,
		ExpiresAt: c.now().Add(c.ttl),
	}

	c.logger.Debug("Session created",
		zap.String("session", sess.ID),
		zap.Int("sessions", len(c.sessions)))

	return sess
}

// Get returns a live session and extends its lifetime.
func (c *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.sessions[id]
	if !exists {
		return nil, false
	}

	now := c.now()
	if now.After(item.ExpiresAt) {
		delete(c.sessions, id)
		return nil, false
	}

	item.ExpiresAt = now.Add(c.ttl)
	c.sessions[id] = item
	return item.session, true
}

// GetOrCreate returns the session for id, or a new one when id is unknown or
// expired. The flag reports whether a new session was created.
func (c *SessionStore) GetOrCreate(id string) (*Session, bool) {
	if sess, ok := c.Get(id); ok {
		return sess, false
	}
	return c.Create(), true
}

func (c *SessionStore) Delete(id string) {
	c.mu.Lock()
	delete(c.sessions, id)
	c.mu.Unlock()
}

func (c *SessionStore) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range c.sessions {
		if oldestKey == "" || item.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.sessions, oldestKey)
		c.logger.Debug("Evicted oldest session",
			zap.String("session", oldestKey))
	}
}

// Sweep removes expired sessions and returns how many were dropped.
func (c *SessionStore) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiredCount := 0

	for id, item := range c.sessions {
		if now.After(item.ExpiresAt) {
			delete(c.sessions, id)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Swept expired sessions",
			zap.Int("count", expiredCount))
	}
	return expiredCount
}

func (c *SessionStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

func (c *SessionStore) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"sessions": len(c.sessions),
		"max_size": c.maxSize,
		"ttl":      c.ttl.String(),
	}
}
