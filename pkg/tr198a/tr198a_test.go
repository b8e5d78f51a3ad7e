package tr198a

import (
	"bytes"
	"testing"
)

// End-to-end scenarios covering the full pipeline from handset identity to
// transmit buffer and back.

func TestScenario_PairingRoundTrip(t *testing.T) {
	const id = HandsetID(0x15A9)

	pkt, err := BuildPairPacket(id)
	if err != nil {
		t.Fatalf("BuildPairPacket failed: %v", err)
	}

	payload, repeats, err := DecodePulses(pkt.Pulses())
	if err != nil {
		t.Fatalf("DecodePulses failed: %v", err)
	}
	if payload.Identity() != id {
		t.Errorf("recovered identity %s, want %s", payload.Identity(), id)
	}
	if !payload.IsPair() {
		t.Errorf("opcode 0x%03X lacks the pairing marker", payload.Opcode())
	}
	if repeats != PairRepeats {
		t.Errorf("recovered %d repeats, want %d", repeats, PairRepeats)
	}
}

func TestScenario_RepeatedBuildsAreIdentical(t *testing.T) {
	const id = HandsetID(0x0BEE)
	cmd := mustCmdv(NewSpeedCommand(3, DirectionReverse))

	first, err := BuildCommandPacket(id, cmd)
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	second, err := BuildCommandPacket(id, cmd)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("same identity and command produced different transmit buffers")
	}
}

func TestScenario_InvalidSpeedProducesNoPacket(t *testing.T) {
	_, err := NewSpeedCommand(10, DirectionForward)
	if err == nil {
		t.Fatal("speed 10 accepted")
	}

	// The zero-value Command left behind by the failed constructor must not
	// encode either.
	if _, err := BuildCommandPacket(0x15A9, Command{}); err == nil {
		t.Fatal("zero-value Command produced a packet")
	}
}

func TestScenario_GeneratedIdentityIsUsable(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if _, err := ValidateID(uint64(id)); err != nil {
			t.Fatalf("generated identity %s failed validation: %v", id, err)
		}
		if _, err := BuildPairPacket(id); err != nil {
			t.Fatalf("generated identity %s failed to build a pairing packet: %v", id, err)
		}
	}
}

func TestScenario_EveryCommandKindRoundTrips(t *testing.T) {
	const id = HandsetID(0x1A2B)

	cmds := []Command{
		mustCmdv(NewSpeedCommand(7, DirectionForward)),
		mustCmdv(NewDirectionCommand(DirectionReverse)),
		NewLightToggleCommand(),
		mustCmdv(NewDimCommand(DimUp, 1)),
		mustCmdv(NewBreezeCommand(Breeze2)),
		mustCmdv(NewTimerCommand(8)),
	}

	for _, cmd := range cmds {
		pkt, err := BuildCommandPacket(id, cmd)
		if err != nil {
			t.Fatalf("%s: build failed: %v", cmd, err)
		}

		want, err := EncodePayload(id, cmd)
		if err != nil {
			t.Fatalf("%s: encode failed: %v", cmd, err)
		}
		got, _, err := DecodePulses(pkt.Pulses())
		if err != nil {
			t.Fatalf("%s: decode failed: %v", cmd, err)
		}
		if got != want {
			t.Errorf("%s: recovered 0x%06X, want 0x%06X", cmd, got.Uint32(), want.Uint32())
		}
	}
}

func TestScenario_DimBurstRepeatFlag(t *testing.T) {
	// Every dim command uses the burst flag, a single step included; the
	// handset never sends a dim press with the operational flag.
	tests := []struct {
		name string
		cmd  Command
		want byte
	}{
		{"single step", mustCmdv(NewDimCommand(DimDown, 1)), PairRepeatFlag},
		{"four steps", mustCmdv(NewDimCommand(DimDown, 4)), PairRepeatFlag + 4*(4-1)},
		{"non-dim keeps operational flag", NewLightToggleCommand(), RadioRepeatFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt, err := BuildCommandPacket(0x15A9, tt.cmd)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if pkt.RepeatFlag() != tt.want {
				t.Errorf("repeat flag 0x%02X, want 0x%02X", pkt.RepeatFlag(), tt.want)
			}
		})
	}
}
