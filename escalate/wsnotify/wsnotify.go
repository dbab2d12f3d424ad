// Package wsnotify delivers escalation notifications over a WebSocket
// connection to an external messaging bridge (e.g. the WhatsApp gateway).
// Delivery acknowledgements are not awaited.
package wsnotify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/autowhat/attendance-agent/core"
)

// alert is the wire format pushed to the bridge.
type alert struct {
	Tier    string    `json:"tier"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// Notifier pushes notifications over one long-lived WebSocket connection.
type Notifier struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to the bridge at url (ws:// or wss://).
func Dial(url string) (*Notifier, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial notification bridge: %w", err)
	}
	return &Notifier{conn: conn}, nil
}

// Notify writes one alert frame. Concurrent writers are serialized; gorilla
// connections allow only one writer at a time.
func (n *Notifier) Notify(ctx context.Context, tier core.Tier, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := n.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	return n.conn.WriteJSON(alert{
		Tier:    string(tier),
		Message: message,
		SentAt:  time.Now().UTC(),
	})
}

// Close closes the bridge connection.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.conn.Close()
}
