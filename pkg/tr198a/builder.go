// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

// Top-level builder surface. These are the three operations consumed by the
// CLI and by higher-level integrations; everything below them is pure, so
// identical inputs always produce byte-identical packets.

// BuildPairPacket builds the one-shot pairing broadcast for an identity.
// The receiver must already be in its listening state; there is no
// handshake round-trip.
func BuildPairPacket(id HandsetID) (*Packet, error) {
	return BuildCommandPacket(id, NewPairCommand())
}

// BuildCommandPacket builds the transmit buffer for a command using the
// transmit options the command implies (pairing redundancy for pair, the
// burst repeat flag and short trailer for dim, defaults otherwise).
func BuildCommandPacket(id HandsetID, cmd Command) (*Packet, error) {
	opts := DefaultTransmitOptions()
	switch cmd.kind {
	case CmdPair:
		opts = PairTransmitOptions()
	case CmdDimStep:
		opts = DimBurstOptions(cmd.dimSteps)
	}
	return BuildCommandPacketWithOptions(id, cmd, opts)
}

// BuildCommandPacketWithOptions builds a transmit buffer with explicit
// transmit options, for callers that need to override redundancy.
func BuildCommandPacketWithOptions(id HandsetID, cmd Command, opts TransmitOptions) (*Packet, error) {
	payload, err := EncodePayload(id, cmd)
	if err != nil {
		return nil, err
	}
	return NewPacket(BuildFrame(payload, opts), opts.RepeatFlag)
}
