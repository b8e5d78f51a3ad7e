package tr198a

import (
	"reflect"
	"testing"
)

func testPayload(t *testing.T) Payload {
	t.Helper()
	p, err := EncodePayload(0x15A9, mustCmdv(NewSpeedCommand(5, DirectionForward)))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return p
}

func TestBuildFrame_CommandShape(t *testing.T) {
	train := BuildFrame(testPayload(t), DefaultTransmitOptions())

	// lead-in + initial gap + 3-pulse first preamble + 46-pulse frame,
	// four repeat blocks of 54 pulses, one trailer mark.
	want := 2 + 3 + 2*PayloadBits + (DefaultRepeats-1)*repeatBlockPulseCount + 1
	if train.Count() != want {
		t.Fatalf("pulse count = %d, want %d", train.Count(), want)
	}

	pulses := train.Durations()
	if pulses[0] != LeadInUS {
		t.Errorf("first pulse = %d, want lead-in %d", pulses[0], LeadInUS)
	}
	if pulses[1] != InitialGapUS {
		t.Errorf("second pulse = %d, want initial gap %d", pulses[1], InitialGapUS)
	}
	if pulses[len(pulses)-1] != TrailerUS {
		t.Errorf("last pulse = %d, want trailer %d", pulses[len(pulses)-1], TrailerUS)
	}
}

func TestBuildFrame_PairShape(t *testing.T) {
	p, err := EncodePayload(0x15A9, NewPairCommand())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	train := BuildFrame(p, PairTransmitOptions())

	// Ten repeats and no trailer.
	want := 2 + 3 + 2*PayloadBits + (PairRepeats-1)*repeatBlockPulseCount
	if train.Count() != want {
		t.Fatalf("pulse count = %d, want %d", train.Count(), want)
	}
	last := train.Durations()[train.Count()-1]
	if last == TrailerUS {
		t.Error("pairing train ends with a trailer mark")
	}
}

func TestBuildFrame_RepetitionIsConcatenation(t *testing.T) {
	// Repeating at the framing stage must equal one frame plus N-1 repeat
	// blocks appended verbatim.
	p := testPayload(t)

	single := BuildFrame(p, TransmitOptions{Repeats: 1, RepeatFlag: RadioRepeatFlag}).Durations()
	block := RepeatBlockPulses(p)

	for _, n := range []int{2, 5, 10} {
		want := append([]int{}, single...)
		for i := 1; i < n; i++ {
			want = append(want, block...)
		}
		got := BuildFrame(p, TransmitOptions{Repeats: n, RepeatFlag: RadioRepeatFlag}).Durations()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("repeats=%d: frame is not a concatenation of repeat blocks", n)
		}
	}
}

func TestBuildFrame_BitTimings(t *testing.T) {
	// The payload section must use the two fixed mark/space signatures.
	p := testPayload(t)
	pulses := BuildFrame(p, DefaultTransmitOptions()).Durations()

	frame := pulses[firstFrameOffset : firstFrameOffset+2*PayloadBits]
	for i := 0; i < len(frame); i += 2 {
		mark, space := frame[i], frame[i+1]
		zero := mark == Mark0US && space == Space0US
		one := mark == Mark1US && space == Space1US
		if !zero && !one {
			t.Fatalf("pulse pair %d/%d µs matches neither bit signature", mark, space)
		}
	}
}

func TestDimBurstOptions(t *testing.T) {
	tests := []struct {
		steps    int
		wantFlag byte
	}{
		{1, 0xC9},
		{2, 0xCD},
		{10, 0xED},
	}
	for _, tt := range tests {
		opts := DimBurstOptions(tt.steps)
		if opts.RepeatFlag != tt.wantFlag {
			t.Errorf("steps=%d: repeat flag 0x%02X, want 0x%02X", tt.steps, opts.RepeatFlag, tt.wantFlag)
		}
		if opts.TrailerUS != DimTrailerUS {
			t.Errorf("steps=%d: trailer %d, want %d", tt.steps, opts.TrailerUS, DimTrailerUS)
		}
	}
}
