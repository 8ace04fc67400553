package oid

import (
	"errors"
	"strings"
	"testing"
)

const testValue = "agc6amh7z527vijkv2cutplwaa"

func TestUUID_EncodeToBase32(t *testing.T) {
	if got := testUUID.EncodeToBase32(); got != testValue {
		t.Errorf("EncodeToBase32() = %v, want %v", got, testValue)
	}
}

func TestDecodeFromBase32(t *testing.T) {
	got, err := DecodeFromBase32(testValue)
	if err != nil {
		t.Fatalf("DecodeFromBase32() error = %v", err)
	}
	if got != testUUID {
		t.Errorf("DecodeFromBase32() = %v, want %v", got, testUUID)
	}
}

func TestDecodeFromBase32_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantPos int
	}{
		{"empty", "", ErrBase32Decode, -1},
		{"too short", testValue[:25], ErrBase32Decode, -1},
		{"too long", testValue + "a", ErrBase32Decode, -1},
		{"padded", testValue[:24] + "==", ErrBase32Decode, 24},
		{"uppercase", strings.ToUpper(testValue), ErrBase32Decode, 0},
		{"digit outside alphabet", "agc6amh7z527vijkv2cutplw1a", ErrBase32Decode, 24},
		{"digit eight", "8gc6amh7z527vijkv2cutplwaa", ErrBase32Decode, 0},
		{"newline", "agc6amh7z527vijkv2cutplw\na", ErrBase32Decode, 24},
		{"separator", "agc6amh7z-527vijkv2cutplwa", ErrBase32Decode, 9},
		{"non-zero trailing bits", testValue[:25] + "b", ErrBase32Decode, 25},
		{"non-zero trailing bits high", testValue[:25] + "7", ErrBase32Decode, 25},
		{"version 4", "5wacbutjwbdexonddvdb2lnyxu", ErrUnsupportedVersion, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromBase32(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeFromBase32(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			var b32 *Base32Error
			if errors.As(err, &b32) && b32.Pos != tt.wantPos {
				t.Errorf("Base32Error.Pos = %d, want %d", b32.Pos, tt.wantPos)
			}
		})
	}
}

func TestBase32_TrailingCharacter(t *testing.T) {
	// The 26th character carries 3 bits, so only every fourth symbol can end
	// a canonical value.
	valid := "aeimquy4"
	for _, c := range base32Alphabet {
		input := testValue[:25] + string(c)
		_, err := decodeBase32(input)
		if strings.ContainsRune(valid, c) {
			if err != nil {
				t.Errorf("decodeBase32(%q) error = %v", input, err)
			}
			continue
		}
		if !errors.Is(err, ErrBase32Decode) {
			t.Errorf("decodeBase32(%q) error = %v, want %v", input, err, ErrBase32Decode)
		}
	}
}

func TestBase32_RoundTrip(t *testing.T) {
	gen := NewGenerator()
	for i := 0; i < 1000; i++ {
		uuid := Must(gen.New())

		enc := uuid.EncodeToBase32()
		if len(enc) != EncodedLen {
			t.Fatalf("EncodeToBase32() length = %d, want %d", len(enc), EncodedLen)
		}
		if enc != strings.ToLower(enc) {
			t.Fatalf("EncodeToBase32() = %v is not lowercase", enc)
		}

		decoded, err := DecodeFromBase32(enc)
		if err != nil {
			t.Fatalf("DecodeFromBase32(%q) error = %v", enc, err)
		}
		if decoded != uuid {
			t.Fatalf("Round-trip failed: got %v, want %v", decoded, uuid)
		}
	}
}
