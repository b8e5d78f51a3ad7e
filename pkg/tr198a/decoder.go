// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import "fmt"

// Pulse classification tolerance in ticks. Captured transmissions jitter by
// a tick or two around the nominal mark/space durations.
const classifyToleranceTicks = 3

var (
	shortTicks = usToTicks(Mark0US) // nominal 12
	longTicks  = usToTicks(Mark1US) // nominal 23
)

// leading pulses before the first codeword frame: lead-in, initial gap and
// the three-pulse first preamble.
const firstFrameOffset = 5

// repeatBlockPulseCount is the pulse count of one repeat block (inter-gap
// pair, six-pulse repeat preamble, 46-pulse frame).
const repeatBlockPulseCount = 2 + 6 + 2*PayloadBits

// DecodePulses recovers the codeword and the frame repeat count from a
// pulse-duration sequence, the inverse of BuildFrame. Used by the decode
// tooling and by round-trip tests; a transmitter never needs it.
func DecodePulses(pulses []int) (Payload, int, error) {
	if len(pulses) < firstFrameOffset+2*PayloadBits {
		return 0, 0, fmt.Errorf("pulse train too short: %d pulses", len(pulses))
	}

	var code uint32
	for i := 0; i < PayloadBits; i++ {
		mark := pulses[firstFrameOffset+2*i]
		space := pulses[firstFrameOffset+2*i+1]
		bit, err := classifyBit(mark, space)
		if err != nil {
			return 0, 0, fmt.Errorf("bit %d: %w", i, err)
		}
		code = code<<1 | bit
	}

	rest := len(pulses) - firstFrameOffset - 2*PayloadBits
	// A trailing mark, when present, is not part of a repeat block.
	if rest%repeatBlockPulseCount == 1 {
		rest--
	}
	if rest%repeatBlockPulseCount != 0 {
		return 0, 0, fmt.Errorf("unexpected pulse count: %d pulses after first frame", rest)
	}

	return Payload(code & PayloadMask), 1 + rest/repeatBlockPulseCount, nil
}

// classifyBit maps a mark/space pair to a bit value by nearest nominal
// duration.
func classifyBit(markUS, spaceUS int) (uint32, error) {
	mark := usToTicks(markUS)
	space := usToTicks(spaceUS)
	switch {
	case near(mark, shortTicks) && near(space, longTicks):
		return 0, nil
	case near(mark, longTicks) && near(space, shortTicks):
		return 1, nil
	}
	return 0, fmt.Errorf("unrecognized mark/space pair %d/%d µs", markUS, spaceUS)
}

func near(ticks, nominal int) bool {
	d := ticks - nominal
	if d < 0 {
		d = -d
	}
	return d <= classifyToleranceTicks
}
