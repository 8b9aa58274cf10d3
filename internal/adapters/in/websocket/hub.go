package websocket

import (
	"sync"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

var _ out.SessionBroadcastPort = (*Hub)(nil)

// Hub — реестр открытых сессий записи. Все операции потокобезопасны.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
	}
}

func (h *Hub) Register(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[session.ID] = session
}

func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.sessions[session.ID]; ok && current == session {
		delete(h.sessions, session.ID)
	}
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) snapshot() []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// RefreshCalendars передает изменение слотов врача во все сессии.
// Возвращает число сессий, принявших событие.
func (h *Hub) RefreshCalendars(doctorID domain.DoctorID) int {
	delivered := 0
	for _, s := range h.snapshot() {
		if s.RefreshCalendar(doctorID) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) RefreshAllCalendars() int {
	delivered := 0
	for _, s := range h.snapshot() {
		if s.RefreshCurrentCalendar() {
			delivered++
		}
	}
	return delivered
}

// CloseAll останавливает циклы всех сессий, соединения закрываются writePump.
func (h *Hub) CloseAll() int {
	sessions := h.snapshot()
	for _, s := range sessions {
		s.loop.Stop()
	}
	return len(sessions)
}
