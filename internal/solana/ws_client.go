package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// WSWatcherConfig configures the WebSocket confirmation watcher.
type WSWatcherConfig struct {
	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration
	// WriteTimeout bounds subscribe/unsubscribe writes.
	WriteTimeout time.Duration
	// ReadTimeout bounds each read when the context has no deadline.
	ReadTimeout time.Duration
}

// DefaultWSWatcherConfig returns default watcher configuration.
func DefaultWSWatcherConfig() WSWatcherConfig {
	return WSWatcherConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      60 * time.Second,
	}
}

// WSWatcher implements ConfirmationWatcher over signatureSubscribe.
//
// At most one swap is ever in flight, so the watcher dials a fresh
// connection per awaited signature instead of multiplexing subscriptions
// over a long-lived socket.
type WSWatcher struct {
	endpoint string
	config   WSWatcherConfig
}

// NewWSWatcher creates a watcher for the given WebSocket endpoint.
func NewWSWatcher(endpoint string, config *WSWatcherConfig) *WSWatcher {
	cfg := DefaultWSWatcherConfig()
	if config != nil {
		cfg = *config
	}
	return &WSWatcher{endpoint: endpoint, config: cfg}
}

// wsRequest is a JSON-RPC 2.0 request over the WebSocket transport.
type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// wsMessage is any inbound frame: a subscription confirmation or a
// notification.
type wsMessage struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Method string          `json:"method"`
	Params *struct {
		Subscription int64 `json:"subscription"`
		Result       struct {
			Context struct {
				Slot uint64 `json:"slot"`
			} `json:"context"`
			Value struct {
				Err interface{} `json:"err"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
	Error *RPCError `json:"error"`
}

// WaitForSignature subscribes for the signature and blocks until the node
// notifies a confirmed-level status or the context expires.
func (w *WSWatcher) WaitForSignature(ctx context.Context, signature string) (*SignatureStatus, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: w.config.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, w.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	req := wsRequest{
		JSONRPC: "2.0",
		ID:      requestID,
		Method:  "signatureSubscribe",
		Params: []interface{}{
			signature,
			map[string]string{"commitment": "confirmed"},
		},
	}

	conn.SetWriteDeadline(time.Now().Add(w.config.WriteTimeout))
	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("write subscribe: %w", err)
	}

	readDeadline := time.Now().Add(w.config.ReadTimeout)
	if d, ok := ctx.Deadline(); ok {
		readDeadline = d
	}

	subID := int64(-1)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		conn.SetReadDeadline(readDeadline)
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("read notification: %w", err)
		}

		if msg.Error != nil {
			return nil, msg.Error
		}

		// Subscription confirmation carries our request id and the
		// assigned subscription number.
		if msg.ID == requestID && msg.Method == "" && msg.Result != nil {
			if err := json.Unmarshal(msg.Result, &subID); err != nil {
				return nil, fmt.Errorf("parse subscription id: %w", err)
			}
			continue
		}

		if msg.Method != "signatureNotification" || msg.Params == nil {
			continue
		}
		if subID >= 0 && msg.Params.Subscription != subID {
			continue
		}

		// signatureSubscribe fires once and the node drops the
		// subscription; the unsubscribe is best effort.
		unsub := wsRequest{
			JSONRPC: "2.0",
			ID:      requestID,
			Method:  "signatureUnsubscribe",
			Params:  []interface{}{msg.Params.Subscription},
		}
		conn.SetWriteDeadline(time.Now().Add(w.config.WriteTimeout))
		_ = conn.WriteJSON(unsub)

		return &SignatureStatus{
			Slot:               msg.Params.Result.Context.Slot,
			Err:                msg.Params.Result.Value.Err,
			ConfirmationStatus: "confirmed",
		}, nil
	}
}
