package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/eruzetaien/KnowMore-sub000/internal/transport"
)

// Client ties the transport session to the state store: it owns the
// connection lifecycle, feeds every inbound event through the dispatcher,
// and exposes the typed command facade (commands.go).
type Client struct {
	session *transport.Session
	store   *Store
	log     *slog.Logger

	// invoked after the server pushes Disconnect, once local state is torn
	// down; the UI uses it to navigate back to the lobby
	onKicked func()
}

func NewClient(session *transport.Session, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		session: session,
		store:   NewStore(),
		log:     log,
	}
	session.SetHandler(c.handleEvent)
	session.OnReconnect(c.resumeRoom)
	return c
}

// resumeRoom runs after an automatic redial: if the client was in a room,
// announce it so the server replays LoadGameData.
func (c *Client) resumeRoom() {
	code := c.store.Snapshot().Room.JoinCode
	if code == "" {
		return
	}
	if err := c.invoke(context.Background(), CmdReconnect, ReconnectArgs{RoomCode: code}); err != nil {
		c.log.Warn("room resume failed", "room", code, "err", err)
	}
}

// Store exposes the session state for readers (the UI).
func (c *Client) Store() *Store { return c.store }

// OnKicked registers the navigate-away side effect for the server-pushed
// Disconnect event.
func (c *Client) OnKicked(fn func()) { c.onKicked = fn }

// Connect opens the hub connection. Idempotent; see transport.Session.
func (c *Client) Connect(ctx context.Context) error {
	return c.session.Connect(ctx)
}

// Disconnect asks the server to clean up, then tears the transport down and
// resets all session state regardless of whether the command went through.
func (c *Client) Disconnect(ctx context.Context) error {
	err := c.invoke(ctx, CmdDisconnect, struct{}{})
	c.teardown()
	return err
}

func (c *Client) IsConnected() bool { return c.session.IsConnected() }

func (c *Client) teardown() {
	c.session.Close()
	c.store.Reset()
}

// handleEvent runs on the session's read loop, so events are applied strictly
// in delivery order.
func (c *Client) handleEvent(event string, payload json.RawMessage) {
	if event == EvtDisconnect {
		c.log.Info("server closed the session")
		c.teardown()
		if c.onKicked != nil {
			c.onKicked()
		}
		return
	}

	if err := c.store.Apply(event, payload); err != nil {
		c.log.Warn("event rejected", "event", event, "err", err)
	}
}
