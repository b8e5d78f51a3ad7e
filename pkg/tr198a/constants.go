// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

// Package tr198a implements the TR198A ceiling-fan remote-control RF protocol.
//
// TR198A receivers listen for 23-bit on-off-keyed codewords on 433.92 MHz.
// This package builds bit-exact codewords from semantic commands (speed,
// direction, light, dim, breeze, timer, pairing), expands them into the
// pulse-timing frames the receiver expects, and packages the result into the
// transmit-buffer container consumed by RM-series RF transmitters.
//
// Every timing and bit-layout value in this file is a protocol fact recovered
// from captured transmissions of the physical handset. None of them are
// tunable; changing one produces packets a real receiver ignores.
package tr198a

// Codeword layout. A codeword is 23 bits: 13 identity bits followed by a
// 10-bit opcode field (speed nibble, direction pair, low nibble).
const (
	IdentityBits   = 13
	PayloadBits    = 23
	PayloadMask    = 0x7FFFFF
	MaxHandsetID   = 0x1FFF
	identityShift  = 10
	speedShift     = 6
	directionShift = 4

	// OpcodeMask covers the non-identity bits of a codeword.
	OpcodeMask = 0x3FF

	// PairOpcode is the opcode field of a pairing codeword. A receiver in
	// its listening state adopts the identity bits of the first pairing
	// codeword it decodes.
	PairOpcode = 0b1111000000
)

// Pulse timings in microseconds. Logical 0 is a short mark and a long space,
// logical 1 the inverse.
const (
	Mark0US  = 394
	Space0US = 755
	Mark1US  = 755
	Space1US = 394

	LeadInUS     = 1_336_916
	InitialGapUS = 92_805
	InterGapUS   = 11_822
	TrailerUS    = 397

	// DimTrailerUS replaces TrailerUS during dim-step bursts.
	DimTrailerUS = 394
)

// Preamble patterns. The first frame of a transmission carries a shorter
// preamble than the repeats that follow it.
var (
	firstPreambleUS = []int{Mark1US, Space1US, Mark1US}
	preambleUS      = []int{Mark1US, Space1US, Mark0US, Space0US, Mark0US, Space0US}
	interGapUS      = []int{InterGapUS, Space1US}
)

// Frame redundancy. RF reception is lossy, so the codeword frame is repeated
// back to back; the receiver only needs one clean copy.
const (
	DefaultRepeats = 5
	PairRepeats    = 10
)

// Transmit-buffer container constants (RM-series wire format).
const (
	// RFHeader433 marks the buffer as a 433 MHz RF transmission.
	RFHeader433 = 0xB2

	// TickUS is the transmitter's pulse-duration time unit.
	TickUS = 32.84

	// RadioRepeatFlag is the container repeat byte for operational
	// commands; PairRepeatFlag is its pairing-mode counterpart.
	RadioRepeatFlag = 0xC0
	PairRepeatFlag  = 0xC9

	containerHeaderSize = 4
	maxSingleByteTick   = 255
)

// Carrier descriptor attached to every packet so the transport layer can
// configure the transmitting hardware.
const (
	CarrierHz     = 433_920_000
	ModulationOOK = "OOK"
)
