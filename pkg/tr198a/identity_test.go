package tr198a

import (
	"errors"
	"testing"
)

func TestGenerateID_NeverReserved(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if id == 0 {
			t.Fatal("GenerateID returned the reserved zero sentinel")
		}
		if uint16(id) > MaxHandsetID {
			t.Fatalf("GenerateID returned 0x%04X, above MaxHandsetID", uint16(id))
		}
		if _, err := ValidateID(uint64(id)); err != nil {
			t.Fatalf("generated id %s failed validation: %v", id, err)
		}
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		value   uint64
		wantErr bool
	}{
		{"minimum valid", 0x0001, false},
		{"maximum valid", 0x1FFF, false},
		{"typical", 0x15A9, false},
		{"reserved zero", 0x0000, true},
		{"one past maximum", 0x2000, true},
		{"sixteen bit value", 0xFFFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidateID(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateID(0x%04X) succeeded, want error", tt.value)
				}
				var invalid *InvalidIdentityError
				if !errors.As(err, &invalid) {
					t.Errorf("error type %T, want *InvalidIdentityError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateID(0x%04X) failed: %v", tt.value, err)
			}
			if uint64(id) != tt.value {
				t.Errorf("ValidateID(0x%04X) = 0x%04X", tt.value, uint16(id))
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    HandsetID
		wantErr bool
	}{
		{"0x15A9", 0x15A9, false},
		{"0x15a9", 0x15A9, false},
		{" 0x0001 ", 0x0001, false},
		{"5545", 5545, false},
		{"0x0000", 0, true},
		{"0x2000", 0, true},
		{"fan", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseID(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q) failed: %v", tt.input, err)
			}
			if id != tt.want {
				t.Errorf("ParseID(%q) = %s, want %s", tt.input, id, tt.want)
			}
		})
	}
}

func TestHandsetID_String(t *testing.T) {
	if got := HandsetID(0x15A9).String(); got != "0x15A9" {
		t.Errorf("String() = %q, want %q", got, "0x15A9")
	}
	if got := HandsetID(0x001).String(); got != "0x0001" {
		t.Errorf("String() = %q, want %q", got, "0x0001")
	}
}

func TestParseID_RoundTrip(t *testing.T) {
	for _, value := range []HandsetID{0x0001, 0x0ABC, 0x15A9, 0x1FFF} {
		parsed, err := ParseID(value.String())
		if err != nil {
			t.Fatalf("ParseID(%s) failed: %v", value, err)
		}
		if parsed != value {
			t.Errorf("round trip %s -> %s", value, parsed)
		}
	}
}
