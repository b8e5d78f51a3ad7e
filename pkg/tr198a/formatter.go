// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import (
	"fmt"
	"strings"
)

// FormatPayload renders a codeword's fields in human-readable form.
func FormatPayload(p Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payload: 0x%06X (%s)\n", p.Uint32(), p.Bits())
	fmt.Fprintf(&b, "  Identity:  %s\n", p.Identity())
	fmt.Fprintf(&b, "  Opcode:    0x%03X (%s)\n", p.Opcode(), DescribeOpcode(p))
	return b.String()
}

// DescribeOpcode names the command family a codeword's opcode field encodes.
func DescribeOpcode(p Payload) string {
	if p.IsPair() {
		return "PAIR"
	}

	parts := []string{}

	switch speed := uint32(p.SpeedBits()); {
	case speed == breezeSpeedBits[Breeze1]:
		parts = append(parts, "breeze 1")
	case speed == breezeSpeedBits[Breeze2]:
		parts = append(parts, "breeze 2")
	case speed == breezeSpeedBits[Breeze3]:
		parts = append(parts, "breeze 3")
	case speed > 0:
		parts = append(parts, fmt.Sprintf("speed %d", speed))
	}

	switch p.DirectionBits() {
	case 0b10:
		parts = append(parts, "forward")
	case 0b01:
		parts = append(parts, "reverse")
	}

	low := p.LowBits()
	if low&0b1000 != 0 {
		switch {
		case low&0b0100 != 0:
			parts = append(parts, "timer 8h")
		case low&0b0010 != 0:
			parts = append(parts, "timer 2h")
		default:
			parts = append(parts, "timer 4h")
		}
	} else {
		if low&0b0100 != 0 {
			parts = append(parts, "light toggle")
		}
		if low&0b0010 != 0 {
			if low&0b0001 != 0 {
				parts = append(parts, "dim down")
			} else {
				parts = append(parts, "dim up")
			}
		}
	}

	if len(parts) == 0 {
		return "idle"
	}
	return strings.Join(parts, ", ")
}

// FormatPacket renders a transmit buffer summary with a hex dump.
func FormatPacket(p *Packet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Packet: %d bytes, %.2f MHz %s, repeat flag 0x%02X\n",
		p.Len(), float64(p.Carrier())/1e6, p.Modulation(), p.RepeatFlag())
	fmt.Fprintf(&b, "  Ticks: %d (length field %d bytes)\n", len(p.Ticks()), p.TickLength())

	data := p.data
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(&b, "  %04X: ", i)
		for _, c := range data[i:end] {
			fmt.Fprintf(&b, "%02X ", c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
