// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

// TransmitOptions selects the frame redundancy and container repeat flag
// for one transmission. The zero value is not meaningful; use one of the
// constructors below.
type TransmitOptions struct {
	// Repeats is the number of times the codeword frame appears in the
	// pulse train.
	Repeats int

	// RepeatFlag is the container's radio repeat byte.
	RepeatFlag byte

	// TrailerUS is the trailing mark appended after the last frame;
	// zero omits it (pairing transmissions carry no trailer).
	TrailerUS int
}

// DefaultTransmitOptions returns the options for an operational command.
func DefaultTransmitOptions() TransmitOptions {
	return TransmitOptions{Repeats: DefaultRepeats, RepeatFlag: RadioRepeatFlag, TrailerUS: TrailerUS}
}

// PairTransmitOptions returns the options for a pairing broadcast: ten
// frame repeats, the pairing repeat flag, no trailer.
func PairTransmitOptions() TransmitOptions {
	return TransmitOptions{Repeats: PairRepeats, RepeatFlag: PairRepeatFlag, TrailerUS: 0}
}

// DimBurstOptions returns the options for a dim burst of the given step
// count. The handset scales the radio repeat flag by four per extra step
// and shortens the trailer.
func DimBurstOptions(steps int) TransmitOptions {
	return TransmitOptions{
		Repeats:    DefaultRepeats,
		RepeatFlag: byte(PairRepeatFlag + 4*(steps-1)),
		TrailerUS:  DimTrailerUS,
	}
}

// PulseTrain is an ordered sequence of on-off-keyed pulse durations in
// microseconds, alternating mark and space starting with a mark. It is the
// physical representation of one complete transmission.
type PulseTrain struct {
	pulses []int
}

// Durations returns a copy of the pulse durations.
func (t *PulseTrain) Durations() []int {
	out := make([]int, len(t.pulses))
	copy(out, t.pulses)
	return out
}

// Count returns the number of pulses.
func (t *PulseTrain) Count() int {
	return len(t.pulses)
}

// payloadPulses expands a codeword into its 46 mark/space durations.
func payloadPulses(p Payload) []int {
	pulses := make([]int, 0, 2*PayloadBits)
	for i := PayloadBits - 1; i >= 0; i-- {
		if uint32(p)>>i&1 == 1 {
			pulses = append(pulses, Mark1US, Space1US)
		} else {
			pulses = append(pulses, Mark0US, Space0US)
		}
	}
	return pulses
}

// RepeatBlockPulses returns the pulses of one repeat block (inter-repeat
// gap, repeat preamble, codeword frame). BuildFrame appends exactly this
// block once per repeat after the first, which is what makes repetition a
// frame-level concatenation.
func RepeatBlockPulses(p Payload) []int {
	frame := payloadPulses(p)
	block := make([]int, 0, len(interGapUS)+len(preambleUS)+len(frame))
	block = append(block, interGapUS...)
	block = append(block, preambleUS...)
	block = append(block, frame...)
	return block
}

// BuildFrame expands a codeword into the complete pulse train: lead-in,
// initial gap, first preamble and frame, then one repeat block per
// additional repeat, then the trailer when the options carry one. Pure and
// deterministic given its inputs.
func BuildFrame(p Payload, opts TransmitOptions) *PulseTrain {
	frame := payloadPulses(p)

	pulses := make([]int, 0, 5+len(frame)+(opts.Repeats-1)*(8+len(frame))+1)
	pulses = append(pulses, LeadInUS, InitialGapUS)
	pulses = append(pulses, firstPreambleUS...)
	pulses = append(pulses, frame...)

	for i := 1; i < opts.Repeats; i++ {
		pulses = append(pulses, interGapUS...)
		pulses = append(pulses, preambleUS...)
		pulses = append(pulses, frame...)
	}

	if opts.TrailerUS > 0 {
		pulses = append(pulses, opts.TrailerUS)
	}

	return &PulseTrain{pulses: pulses}
}
