package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"
)

const (
	defaultDialTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultPingInterval = 25 * time.Second
)

// pong deadline is derived from the ping interval with headroom
const pongWaitFactor = 2

var ErrSessionClosed = errors.New("session closed")

// Envelope is the wire format of the hub channel, both directions:
// {"id":"...","type":"JoinRoom","payload":{...}}. Inbound events carry the
// event name in Type and no id.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler receives every inbound event in delivery order.
type Handler func(event string, payload json.RawMessage)

type Config struct {
	URL          string        // ws(s)://host/gamehub
	Token        func() string // bearer token supplier, optional
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration
	MaxRedials   uint64 // dial attempts per connect/redial cycle
}

// Session owns the single physical connection to the game hub. At most one
// connection handle is live at a time; redials replace it. Commands invoked
// while disconnected are dropped without error, matching the server contract
// that state is resynchronized via LoadGameData after a reconnect.
type Session struct {
	cfg Config
	log *slog.Logger

	handler     Handler
	onReconnect func()

	mu         sync.Mutex
	conn       *websocket.Conn
	connecting bool
	closed     bool

	writeMu sync.Mutex // gorilla allows a single concurrent writer
}

func NewSession(cfg Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	return &Session{cfg: cfg, log: log}
}

// SetHandler registers the inbound event handler. Must be called before
// Connect; events received with no handler set are discarded.
func (s *Session) SetHandler(h Handler) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// OnReconnect registers a hook that runs after an automatic redial succeeds,
// so the owner can announce itself to the server (the Reconnect command).
func (s *Session) OnReconnect(fn func()) {
	s.mu.Lock()
	s.onReconnect = fn
	s.mu.Unlock()
}

// Connect establishes the connection. Idempotent: if a connection is live or
// an attempt is already in flight, it returns immediately.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.conn != nil || s.connecting {
		s.mu.Unlock()
		return nil
	}
	s.connecting = true
	s.closed = false
	s.mu.Unlock()

	conn, err := s.dial(ctx)

	s.mu.Lock()
	s.connecting = false
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return ErrSessionClosed
	}
	s.conn = conn
	s.mu.Unlock()

	go s.readLoop(conn)
	go s.pingLoop(conn)
	return nil
}

func (s *Session) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.DialTimeout}
	hdr := http.Header{}
	if s.cfg.Token != nil {
		if tok := s.cfg.Token(); tok != "" {
			hdr.Set("Authorization", "Bearer "+tok)
		}
	}

	var backoff retry.Backoff = retry.NewExponential(500 * time.Millisecond)
	backoff = retry.WithCappedDuration(15*time.Second, backoff)
	if s.cfg.MaxRedials > 0 {
		backoff = retry.WithMaxRetries(s.cfg.MaxRedials, backoff)
	}

	var conn *websocket.Conn
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, _, derr := dialer.DialContext(ctx, s.cfg.URL, hdr)
		if derr != nil {
			s.log.Debug("hub dial failed", "url", s.cfg.URL, "err", derr)
			return retry.RetryableError(derr)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// IsConnected reports the current link status.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Connecting reports whether a connect attempt is in flight (the UI loading
// flag).
func (s *Session) Connecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connecting
}

// Invoke sends one named remote invocation. It resolves once the write is
// handed to the transport, not when the server reacts; callers observe the
// effect through inbound events. While disconnected the command is dropped
// silently (known contract gap, the caller cannot tell sent from dropped).
func (s *Session) Invoke(ctx context.Context, target string, arg any) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		s.log.Debug("command dropped, not connected", "target", target)
		return nil
	}

	payload, err := json.Marshal(arg)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Envelope{
		ID:      uuid.NewString(),
		Type:    target,
		Payload: payload,
	})
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline := time.Now().Add(s.cfg.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Close tears the connection down and disables automatic redial. Safe to call
// multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

func (s *Session) readLoop(conn *websocket.Conn) {
	pongWait := s.cfg.PingInterval * pongWaitFactor
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Warn("bad hub message", "err", err)
			continue
		}

		s.mu.Lock()
		h := s.handler
		s.mu.Unlock()
		if h != nil {
			h(env.Type, env.Payload)
		}
	}

	s.mu.Lock()
	if s.closed || s.conn != conn {
		// deliberate shutdown, or already replaced by a newer connection
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.conn = nil
	s.mu.Unlock()
	_ = conn.Close()

	s.log.Info("hub connection dropped, redialing")
	go s.redial()
}

func (s *Session) redial() {
	if err := s.Connect(context.Background()); err != nil {
		s.log.Error("hub redial failed", "err", err)
		return
	}
	s.mu.Lock()
	fn := s.onReconnect
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Session) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		live := s.conn == conn
		s.mu.Unlock()
		if !live {
			return
		}

		s.writeMu.Lock()
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		err := conn.WriteMessage(websocket.PingMessage, nil)
		s.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}
