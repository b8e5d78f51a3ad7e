// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package transport

import (
	"context"
	"fmt"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/skybreeze/fanctl/internal/logging"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// DefaultBaudRate matches the transmitter module's UART configuration.
const DefaultBaudRate = 115200

// SerialSender writes transmit buffers to an RF transmitter on a local
// serial port.
type SerialSender struct {
	port     serial.Port
	portName string
}

// OpenSerial opens the named serial port in 8N1 mode.
func OpenSerial(portName string, baudRate int) (*SerialSender, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	logging.Info("serial port opened",
		zap.String("port", portName),
		zap.Int("baud", baudRate),
	)
	return &SerialSender{port: port, portName: portName}, nil
}

// Deliver writes the packet bytes to the port. The transmitter keys the
// radio as soon as the container's final byte arrives.
func (s *SerialSender) Deliver(ctx context.Context, pkt *tr198a.Packet) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Target: s.Target(), Err: err}
	}

	data := pkt.Bytes()
	logging.LogPacket("serial transmit", data)

	n, err := s.port.Write(data)
	if err != nil {
		return &DeliveryError{Target: s.Target(), Err: err}
	}
	if n != len(data) {
		return &DeliveryError{
			Target: s.Target(),
			Err:    fmt.Errorf("short write: %d of %d bytes", n, len(data)),
		}
	}
	return nil
}

func (s *SerialSender) Target() string {
	return fmt.Sprintf("serial:%s", s.portName)
}

func (s *SerialSender) Close() error {
	return s.port.Close()
}
