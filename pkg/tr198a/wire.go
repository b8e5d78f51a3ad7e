// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Bridge wire format. A transmit request travels to an RF bridge as one
// CBOR-encoded binary message carrying the container bytes plus the carrier
// descriptor; the bridge answers with a CBOR ack.

type wireEnvelope struct {
	Carrier    uint32 `cbor:"1,keyasint"`
	Modulation string `cbor:"2,keyasint"`
	Data       []byte `cbor:"3,keyasint"`
}

// Ack is the bridge's reply to a transmit request.
type Ack struct {
	OK    bool   `cbor:"1,keyasint"`
	Error string `cbor:"2,keyasint,omitempty"`
}

// MarshalWire encodes the packet for delivery to a bridge.
func (p *Packet) MarshalWire() ([]byte, error) {
	data, err := cbor.Marshal(wireEnvelope{
		Carrier:    p.Carrier(),
		Modulation: p.Modulation(),
		Data:       p.data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode wire envelope: %w", err)
	}
	return data, nil
}

// UnmarshalWire decodes and verifies a bridge transmit request. The
// embedded container is re-validated with DecodePacket so a bridge never
// keys the radio with a corrupt buffer.
func UnmarshalWire(data []byte) (*Packet, error) {
	var env wireEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode wire envelope: %w", err)
	}
	if env.Carrier != CarrierHz {
		return nil, fmt.Errorf("unsupported carrier %d Hz (want %d)", env.Carrier, CarrierHz)
	}
	if env.Modulation != ModulationOOK {
		return nil, fmt.Errorf("unsupported modulation %q (want %q)", env.Modulation, ModulationOOK)
	}
	return DecodePacket(env.Data)
}

// MarshalAck encodes a bridge reply.
func MarshalAck(a Ack) ([]byte, error) {
	data, err := cbor.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ack: %w", err)
	}
	return data, nil
}

// UnmarshalAck decodes a bridge reply.
func UnmarshalAck(data []byte) (Ack, error) {
	var a Ack
	if err := cbor.Unmarshal(data, &a); err != nil {
		return Ack{}, fmt.Errorf("failed to decode ack: %w", err)
	}
	return a, nil
}
