package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

// BookingFactory собирает оркестратор для новой сессии. cookies — cookies запроса
// страницы, с ними сессия ходит в API записи.
type BookingFactory func(view out.ViewPort, calendar out.CalendarPort, loop out.EventLoopPort, cookies []*http.Cookie) in.BookingUseCase

type HandlerOptions struct {
	Location        *time.Location
	EventsPerSecond float64
	EventsBurst     int
	AllowedOrigins  []string
}

type Handler struct {
	hub      *Hub
	factory  BookingFactory
	upgrader gorillawebsocket.Upgrader
	opts     HandlerOptions
	metrics  out.MetricsPort
	logger   out.LoggerPort
}

func NewHandler(hub *Hub, factory BookingFactory, opts HandlerOptions, metrics out.MetricsPort, logger out.LoggerPort) *Handler {
	h := &Handler{
		hub:     hub,
		factory: factory,
		opts:    opts,
		metrics: metrics,
		logger:  logger.WithModule("WebSocketHandler"),
	}
	h.upgrader = gorillawebsocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	// Без списка разрешенных источников работает проверка same-origin из gorilla
	if len(opts.AllowedOrigins) > 0 {
		h.upgrader.CheckOrigin = h.checkOrigin
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	h.logger.Warn("websocket.origin_rejected", out.LogFields{
		"origin": origin,
	})
	return false
}

// ServeHTTP переводит соединение на WebSocket и запускает сессию записи.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket.upgrade_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	loop := NewEventLoop(context.Background(), h.opts.Location)
	limiter := rate.NewLimiter(rate.Limit(h.opts.EventsPerSecond), h.opts.EventsBurst)
	session := NewSession(uuid.New().String(), loop, limiter, h.logger)
	session.Attach(h.factory(session, session, loop, r.Cookies()))

	h.hub.Register(session)
	if h.metrics != nil {
		h.metrics.SessionOpened()
	}
	h.logger.Info("websocket.session.opened", out.LogFields{
		"sessionId": session.ID,
		"remote":    r.RemoteAddr,
	})

	go loop.Run()
	go h.writePump(session, ws)
	go h.readPump(session, ws)
}

func (h *Handler) readPump(session *Session, ws *gorillawebsocket.Conn) {
	defer func() {
		h.hub.Unregister(session)
		session.loop.Stop()
		ws.Close()
		if h.metrics != nil {
			h.metrics.SessionClosed()
		}
		h.logger.Info("websocket.session.closed", out.LogFields{
			"sessionId": session.ID,
		})
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if gorillawebsocket.IsUnexpectedCloseError(err, gorillawebsocket.CloseGoingAway, gorillawebsocket.CloseNormalClosure) {
				h.logger.Warn("websocket.read_failed", out.LogFields{
					"sessionId": session.ID,
					"error":     err.Error(),
				})
			}
			return
		}
		session.HandleMessage(message)
	}
}

func (h *Handler) writePump(session *Session, ws *gorillawebsocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case <-session.loop.Done():
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(gorillawebsocket.CloseMessage, []byte{})
			return
		case message := <-session.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
				session.loop.Stop()
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(gorillawebsocket.PingMessage, nil); err != nil {
				session.loop.Stop()
				return
			}
		}
	}
}
