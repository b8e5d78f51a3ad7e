// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

// Package discovery finds fanctl RF bridges on the local network via mDNS,
// and lets a bridge advertise itself.
package discovery

import (
	"fmt"
	"time"
)

// Bridge represents a discovered RF bridge on the network.
type Bridge struct {
	// Name is the mDNS instance name (e.g., "fanctl-bridge-livingroom").
	Name string

	// Hostname is the mDNS hostname.
	Hostname string

	// IP is the address the bridge resolved to, IPv4 preferred.
	IP string

	// Port is the WebSocket listen port.
	Port int

	// Metadata contains additional mDNS TXT record data.
	Metadata map[string]string

	// DiscoveredAt is when the bridge was discovered.
	DiscoveredAt time.Time
}

func (b *Bridge) String() string {
	return fmt.Sprintf("%s at %s:%d", b.Name, b.IP, b.Port)
}

// URL returns the WebSocket transmit endpoint for the bridge.
func (b *Bridge) URL() string {
	return fmt.Sprintf("ws://%s:%d/transmit", b.IP, b.Port)
}

// GetMetadata retrieves a TXT record value by key, or "" if absent.
func (b *Bridge) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
