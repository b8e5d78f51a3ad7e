package tr198a

import (
	"errors"
	"testing"
)

func TestNewSpeedCommand_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		wantErr bool
	}{
		{"off", 0, false},
		{"mid", 5, false},
		{"maximum", 9, false},
		{"below minimum", -1, true},
		{"above maximum", 10, true},
		{"far out", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewSpeedCommand(tt.level, DirectionForward)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewSpeedCommand(%d) succeeded, want error", tt.level)
				}
				var oor *OutOfRangeError
				if !errors.As(err, &oor) {
					t.Errorf("error type %T, want *OutOfRangeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSpeedCommand(%d) failed: %v", tt.level, err)
			}
			if cmd.Kind() != CmdSetSpeed {
				t.Errorf("Kind() = %d, want CmdSetSpeed", cmd.Kind())
			}
		})
	}
}

func TestNewBreezeCommand(t *testing.T) {
	for _, preset := range []BreezePreset{Breeze1, Breeze2, Breeze3} {
		if _, err := NewBreezeCommand(preset); err != nil {
			t.Errorf("NewBreezeCommand(%d) failed: %v", preset, err)
		}
	}

	for _, preset := range []int{0, 4, -1, 42} {
		_, err := NewBreezeCommand(BreezePreset(preset))
		if err == nil {
			t.Errorf("NewBreezeCommand(%d) succeeded, want error", preset)
			continue
		}
		var unknown *UnknownPresetError
		if !errors.As(err, &unknown) {
			t.Errorf("error type %T, want *UnknownPresetError", err)
		}
	}
}

func TestNewTimerCommand(t *testing.T) {
	for _, hours := range []int{2, 4, 8} {
		if _, err := NewTimerCommand(hours); err != nil {
			t.Errorf("NewTimerCommand(%d) failed: %v", hours, err)
		}
	}
	for _, hours := range []int{0, 1, 3, 6, 12} {
		if _, err := NewTimerCommand(hours); err == nil {
			t.Errorf("NewTimerCommand(%d) succeeded, want error", hours)
		}
	}
}

func TestNewDimCommand_Steps(t *testing.T) {
	if _, err := NewDimCommand(DimUp, 1); err != nil {
		t.Errorf("single step failed: %v", err)
	}
	if _, err := NewDimCommand(DimDown, 10); err != nil {
		t.Errorf("maximum burst failed: %v", err)
	}
	for _, steps := range []int{0, 11, -3} {
		if _, err := NewDimCommand(DimUp, steps); err == nil {
			t.Errorf("NewDimCommand(up, %d) succeeded, want error", steps)
		}
	}
}

func TestZeroValueCommand_RejectedByEncoder(t *testing.T) {
	// A Command that skipped its constructor must fail encoding, not
	// silently produce a codeword.
	_, err := EncodePayload(0x15A9, Command{})
	if err == nil {
		t.Fatal("EncodePayload accepted a zero-value Command")
	}
	var enc *EncodingError
	if !errors.As(err, &enc) {
		t.Errorf("error type %T, want *EncodingError", err)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("forward"); err != nil || d != DirectionForward {
		t.Errorf("ParseDirection(forward) = %v, %v", d, err)
	}
	if d, err := ParseDirection("reverse"); err != nil || d != DirectionReverse {
		t.Errorf("ParseDirection(reverse) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) succeeded, want error")
	}
}
