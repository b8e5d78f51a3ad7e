// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

// Package bridge implements the network RF bridge: a WebSocket server that
// accepts transmit requests and forwards them to a locally attached
// transmitter. Run it on the machine the transmitter hardware is plugged
// into; clients on other machines deliver through it.
package bridge

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/skybreeze/fanctl/internal/discovery"
	"github.com/skybreeze/fanctl/internal/logging"
	"github.com/skybreeze/fanctl/internal/transport"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

const (
	readTimeout     = 60 * time.Second
	writeTimeout    = 10 * time.Second
	transmitTimeout = 30 * time.Second
)

// Config holds the bridge configuration.
type Config struct {
	Listen        string // host:port to listen on
	Username      string // basic auth; empty disables auth
	Password      string
	AdvertiseName string // mDNS instance name
	NoMDNS        bool   // skip mDNS advertisement
}

// Server is the bridge's WebSocket endpoint.
type Server struct {
	config     Config
	sender     transport.Sender
	upgrader   websocket.Upgrader
	httpServer *http.Server
	unregister func()
}

// New creates a bridge server that forwards transmit requests to sender.
func New(config Config, sender transport.Sender) *Server {
	s := &Server{
		config: config,
		sender: sender,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/transmit", s.handleTransmit)
	s.httpServer = &http.Server{
		Addr:    config.Listen,
		Handler: mux,
	}
	return s
}

// Start listens and serves until Shutdown. Blocks.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	logging.Info("bridge listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("transmitter", s.sender.Target()),
		zap.Bool("auth", s.config.Username != ""),
	)

	if !s.config.NoMDNS {
		port := listener.Addr().(*net.TCPAddr).Port
		txt := []string{"version=1"}
		if s.config.Username != "" {
			txt = append(txt, "auth=basic")
		}
		unregister, err := discovery.Register(s.advertiseName(port), port, txt)
		if err != nil {
			// Advertising is best effort; clients can still connect by URL.
			logging.Warn("mDNS registration failed", zap.Error(err))
		} else {
			s.unregister = unregister
			logging.Info("mDNS service registered",
				zap.String("name", s.advertiseName(port)),
				zap.String("type", discovery.ServiceType),
			)
		}
	}

	err = s.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) advertiseName(port int) string {
	if s.config.AdvertiseName != "" {
		return s.config.AdvertiseName
	}
	hostname := "bridge"
	if h, err := os.Hostname(); err == nil && h != "" {
		hostname = h
	}
	return "fanctl-" + hostname + "-" + strconv.Itoa(port)
}

// Shutdown stops accepting connections, withdraws the mDNS advertisement and
// closes the transmitter.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("bridge shutting down")

	if s.unregister != nil {
		s.unregister()
	}
	err := s.httpServer.Shutdown(ctx)
	if closeErr := s.sender.Close(); err == nil {
		err = closeErr
	}
	logging.Sync()
	return err
}

// handleTransmit upgrades the connection and serves transmit requests until
// the client hangs up.
func (s *Server) handleTransmit(w http.ResponseWriter, r *http.Request) {
	remoteAddr := r.RemoteAddr

	if !s.authorized(r) {
		logging.Warn("unauthorized transmit request", zap.String("remote_addr", remoteAddr))
		w.Header().Set("WWW-Authenticate", `Basic realm="fanctl bridge"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	logging.Info("client connected", zap.String("remote_addr", remoteAddr))
	defer logging.Info("client disconnected", zap.String("remote_addr", remoteAddr))

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("read failed",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		ack := s.transmit(r.Context(), remoteAddr, data)

		reply, err := tr198a.MarshalAck(ack)
		if err != nil {
			logging.Error("failed to encode ack", zap.Error(err))
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
			logging.Warn("failed to send ack",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

// transmit validates one wire envelope and forwards it to the transmitter.
// All failures are reported to the client as negative acks.
func (s *Server) transmit(ctx context.Context, remoteAddr string, data []byte) tr198a.Ack {
	pkt, err := tr198a.UnmarshalWire(data)
	if err != nil {
		logging.Warn("rejected transmit request",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return tr198a.Ack{OK: false, Error: err.Error()}
	}

	logging.Info("transmit request",
		zap.String("remote_addr", remoteAddr),
		zap.Int("packet_bytes", pkt.Len()),
		zap.Uint8("repeat_flag", pkt.RepeatFlag()),
	)

	ctx, cancel := context.WithTimeout(ctx, transmitTimeout)
	defer cancel()

	if err := s.sender.Deliver(ctx, pkt); err != nil {
		logging.Error("delivery failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return tr198a.Ack{OK: false, Error: err.Error()}
	}
	return tr198a.Ack{OK: true}
}

// authorized checks HTTP Basic credentials when auth is configured.
func (s *Server) authorized(r *http.Request) bool {
	if s.config.Username == "" {
		return true
	}
	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.Username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.Password)) == 1
	return userMatch && passMatch
}
