// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Packet is the final transmit buffer in the RM-series container format:
//
//	byte 0      0xB2 (433 MHz RF)
//	byte 1      radio repeat flag
//	bytes 2-3   little-endian length of the tick stream
//	bytes 4..   pulse durations in 32.84 µs ticks; durations of 256 ticks
//	            or more are escaped as 0x00 plus a big-endian uint16
//
// The length field is the container's integrity check: a receiver recomputes
// it over the tick stream and discards the buffer on mismatch. Packets are
// immutable once built and carry their carrier/modulation descriptor so the
// transport can configure the transmitting hardware.
type Packet struct {
	data []byte
}

// NewPacket quantises a pulse train to transmitter ticks and wraps it in
// the container. Fails only when a duration exceeds the 16-bit tick range.
func NewPacket(train *PulseTrain, repeatFlag byte) (*Packet, error) {
	body := make([]byte, 0, train.Count()+8)
	for _, us := range train.pulses {
		t := usToTicks(us)
		if t > math.MaxUint16 {
			return nil, fmt.Errorf("pulse duration %d µs exceeds tick range", us)
		}
		if t > maxSingleByteTick {
			body = append(body, 0x00, byte(t>>8), byte(t))
		} else {
			body = append(body, byte(t))
		}
	}

	data := make([]byte, containerHeaderSize, containerHeaderSize+len(body))
	data[0] = RFHeader433
	data[1] = repeatFlag
	binary.LittleEndian.PutUint16(data[2:4], uint16(len(body)))
	data = append(data, body...)

	return &Packet{data: data}, nil
}

// usToTicks converts microseconds to transmitter ticks, rounding to nearest.
func usToTicks(us int) int {
	return int(math.Round(float64(us) / TickUS))
}

// DecodePacket parses and verifies a container. The stored length field is
// recomputed over the tick stream and a mismatch is rejected; this is the
// round-trip self-consistency check the transmitter performs before keying
// the radio.
func DecodePacket(data []byte) (*Packet, error) {
	if len(data) < containerHeaderSize {
		return nil, fmt.Errorf("packet too short: %d bytes (min %d)", len(data), containerHeaderSize)
	}
	if data[0] != RFHeader433 {
		return nil, fmt.Errorf("not a 433 MHz RF packet: header 0x%02X (want 0x%02X)", data[0], RFHeader433)
	}
	stored := binary.LittleEndian.Uint16(data[2:4])
	if int(stored) != len(data)-containerHeaderSize {
		return nil, fmt.Errorf("length field mismatch: stored %d, actual %d", stored, len(data)-containerHeaderSize)
	}
	// The tick stream must not end mid-escape.
	if _, err := parseTicks(data[containerHeaderSize:]); err != nil {
		return nil, err
	}

	p := &Packet{data: make([]byte, len(data))}
	copy(p.data, data)
	return p, nil
}

// parseTicks walks a tick stream, expanding escaped 16-bit durations.
func parseTicks(body []byte) ([]int, error) {
	ticks := make([]int, 0, len(body))
	for i := 0; i < len(body); {
		if body[i] == 0x00 {
			if i+2 >= len(body) {
				return nil, fmt.Errorf("truncated escaped tick at offset %d", i)
			}
			ticks = append(ticks, int(body[i+1])<<8|int(body[i+2]))
			i += 3
		} else {
			ticks = append(ticks, int(body[i]))
			i++
		}
	}
	return ticks, nil
}

// Bytes returns a copy of the raw transmit buffer.
func (p *Packet) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// Len returns the buffer size in bytes.
func (p *Packet) Len() int {
	return len(p.data)
}

// RepeatFlag returns the container's radio repeat byte.
func (p *Packet) RepeatFlag() byte {
	return p.data[1]
}

// TickLength returns the stored length field.
func (p *Packet) TickLength() uint16 {
	return binary.LittleEndian.Uint16(p.data[2:4])
}

// Ticks returns the pulse durations in transmitter ticks.
func (p *Packet) Ticks() []int {
	ticks, _ := parseTicks(p.data[containerHeaderSize:])
	return ticks
}

// Pulses reconstructs the pulse durations in microseconds, quantised to the
// transmitter's tick resolution.
func (p *Packet) Pulses() []int {
	ticks := p.Ticks()
	pulses := make([]int, len(ticks))
	for i, t := range ticks {
		pulses[i] = int(math.Round(float64(t) * TickUS))
	}
	return pulses
}

// Carrier returns the carrier frequency in Hz.
func (p *Packet) Carrier() uint32 {
	return CarrierHz
}

// Modulation returns the modulation scheme name.
func (p *Packet) Modulation() string {
	return ModulationOOK
}

// Hex renders the buffer as lowercase hex.
func (p *Packet) Hex() string {
	return hex.EncodeToString(p.data)
}

// Base64 renders the buffer in the "b64:" form accepted by remote-command
// integrations.
func (p *Packet) Base64() string {
	return "b64:" + base64.StdEncoding.EncodeToString(p.data)
}
