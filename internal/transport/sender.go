// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

// Package transport delivers encoded transmit buffers to RF hardware. A
// Sender hides whether the transmitter hangs off a local serial port or sits
// behind a network bridge; the codec never learns which.
package transport

import (
	"context"
	"fmt"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// Sender delivers transmit buffers to an RF transmitter.
type Sender interface {
	// Deliver hands one packet to the transmitter. The packet is either
	// fully delivered or the error describes the failed target; there is
	// no partial delivery.
	Deliver(ctx context.Context, pkt *tr198a.Packet) error

	// Target names the endpoint for log and error messages.
	Target() string

	Close() error
}

// DeliveryError wraps a transport failure with the target it occurred on.
type DeliveryError struct {
	Target string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
