// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import (
	"fmt"
	"strconv"
)

// Payload is the 23-bit codeword transmitted over the air: 13 identity bits
// followed by the 10-bit opcode field.
type Payload uint32

// EncodePayload maps a validated (identity, command) pair to its codeword.
// The mapping is a pure function: no timestamps, counters or randomness.
// Invalid inputs fail with *EncodingError; constructors upstream make that
// unreachable in normal use.
func EncodePayload(id HandsetID, cmd Command) (Payload, error) {
	if _, err := ValidateID(uint64(id)); err != nil {
		return 0, &EncodingError{Reason: err.Error()}
	}
	if !cmd.valid {
		return 0, &EncodingError{Reason: "command was not built by a constructor"}
	}

	if cmd.kind == CmdPair {
		return Payload((uint32(id)<<identityShift | PairOpcode) & PayloadMask), nil
	}

	var speedBits, lowBits uint32
	dirBits := directionBits(cmd.direction)

	switch cmd.kind {
	case CmdSetSpeed:
		speedBits = uint32(cmd.speed)
	case CmdSetDirection:
		// Speed nibble zero: the receiver keeps its current speed and
		// only latches the direction pair.
	case CmdToggleLight:
		lowBits = 0b0100
	case CmdDimStep:
		lowBits = 0b0010
		if cmd.dim == DimDown {
			lowBits |= 0b0001
		}
	case CmdBreezePreset:
		speedBits = breezeSpeedBits[cmd.breeze]
	case CmdTimer:
		lowBits = 0b1000
		switch cmd.timer {
		case 8:
			lowBits |= 0b0100
		case 2:
			lowBits |= 0b0010
		}
	default:
		return 0, &EncodingError{Reason: fmt.Sprintf("unknown command kind %d", cmd.kind)}
	}

	p := uint32(id) << identityShift
	p |= speedBits << speedShift
	p |= dirBits << directionShift
	p |= lowBits
	return Payload(p & PayloadMask), nil
}

// directionBits returns the two-bit direction encoding.
func directionBits(d Direction) uint32 {
	if d == DirectionForward {
		return 0b10
	}
	return 0b01
}

// Identity extracts the handset identity field.
func (p Payload) Identity() HandsetID {
	return HandsetID((uint32(p) >> identityShift) & MaxHandsetID)
}

// Opcode extracts the 10-bit non-identity field.
func (p Payload) Opcode() uint16 {
	return uint16(uint32(p) & OpcodeMask)
}

// SpeedBits extracts the speed nibble (bits 9-6).
func (p Payload) SpeedBits() uint8 {
	return uint8((uint32(p) >> speedShift) & 0xF)
}

// DirectionBits extracts the direction pair (bits 5-4).
func (p Payload) DirectionBits() uint8 {
	return uint8((uint32(p) >> directionShift) & 0b11)
}

// LowBits extracts the timer/light/dim nibble (bits 3-0).
func (p Payload) LowBits() uint8 {
	return uint8(uint32(p) & 0xF)
}

// IsPair reports whether the codeword carries the pairing marker.
func (p Payload) IsPair() bool {
	return p.Opcode() == PairOpcode
}

// Uint32 returns the raw codeword value.
func (p Payload) Uint32() uint32 {
	return uint32(p)
}

// Bits renders the codeword as a fixed-width 23-character bit string, the
// form used by the reverse-engineering notes and the decode tooling.
func (p Payload) Bits() string {
	return fmt.Sprintf("%023b", uint32(p))
}

// ParseBits parses a 23-character bit string back into a Payload.
func ParseBits(s string) (Payload, error) {
	if len(s) != PayloadBits {
		return 0, fmt.Errorf("payload must be %d bits, got %d", PayloadBits, len(s))
	}
	v, err := strconv.ParseUint(s, 2, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid payload bits: %w", err)
	}
	return Payload(uint32(v) & PayloadMask), nil
}
