// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package transport

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/skybreeze/fanctl/internal/logging"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

const (
	handshakeTimeout = 10 * time.Second
	dialTimeout      = 15 * time.Second
	ackTimeout       = 10 * time.Second
)

// BridgeSender delivers transmit buffers to a network RF bridge over a
// WebSocket. Each delivery is one binary request message answered by one
// binary ack.
type BridgeSender struct {
	conn *websocket.Conn
	url  string
}

// BridgeOptions configure a bridge connection.
type BridgeOptions struct {
	Username      string
	Password      string
	SkipSSLVerify bool
}

// DialBridge connects to a bridge's transmit endpoint. Only ws:// and wss://
// URLs are accepted; credentials go out as HTTP Basic auth on the upgrade
// request.
func DialBridge(ctx context.Context, wsURL string, opts BridgeOptions) (*BridgeSender, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: opts.SkipSSLVerify,
		}
	}

	headers := http.Header{}
	if opts.Username != "" && opts.Password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(opts.Username + ":" + opts.Password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("bridge connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("bridge connection failed: %w", err)
	}

	logging.Info("bridge connected", zap.String("url", wsURL))
	return &BridgeSender{conn: conn, url: wsURL}, nil
}

// Deliver sends the packet's wire envelope and waits for the bridge's ack.
// A negative ack is a delivery failure even though the transport succeeded.
func (b *BridgeSender) Deliver(ctx context.Context, pkt *tr198a.Packet) error {
	wire, err := pkt.MarshalWire()
	if err != nil {
		return &DeliveryError{Target: b.Target(), Err: err}
	}
	logging.LogPacket("bridge transmit", wire)

	if deadline, ok := ctx.Deadline(); ok {
		_ = b.conn.SetWriteDeadline(deadline)
	}
	if err := b.conn.WriteMessage(websocket.BinaryMessage, wire); err != nil {
		return &DeliveryError{Target: b.Target(), Err: err}
	}

	ack, err := b.readAck(ctx)
	if err != nil {
		return &DeliveryError{Target: b.Target(), Err: err}
	}
	if !ack.OK {
		return &DeliveryError{Target: b.Target(), Err: fmt.Errorf("bridge rejected transmit: %s", ack.Error)}
	}
	return nil
}

func (b *BridgeSender) readAck(ctx context.Context) (tr198a.Ack, error) {
	deadline := time.Now().Add(ackTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = b.conn.SetReadDeadline(deadline)

	for {
		messageType, data, err := b.conn.ReadMessage()
		if err != nil {
			return tr198a.Ack{}, err
		}
		// Control frames and stray text messages are not acks.
		if messageType != websocket.BinaryMessage {
			continue
		}
		return tr198a.UnmarshalAck(data)
	}
}

func (b *BridgeSender) Target() string {
	return b.url
}

func (b *BridgeSender) Close() error {
	return b.conn.Close()
}
