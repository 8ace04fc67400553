package oid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"
)

// UUID is the 128-bit unique value carried by an OID. Values produced by this
// package are always version 7 (time-ordered) UUIDs as defined by RFC 9562.
type UUID [16]byte

// Version represents the UUID version
type Version byte

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
	VersionReorderedTime
	VersionTimeSorted // UUIDv7, the only version accepted by this package
	VersionCustom
)

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

// Nil is the nil UUID (all zeros). It is the zero value and is never a valid
// OID value.
var Nil UUID

// Version returns the version of the UUID
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// validate enforces the UUIDv7 invariant.
func (u UUID) validate() error {
	if u.Version() != VersionTimeSorted {
		return fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, u.Version())
	}
	return nil
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// ParseUUID parses a version 7 UUID from its textual representation.
// It accepts the following formats:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
//
// Malformed text fails with ErrInvalidFormat, any other version with
// ErrUnsupportedVersion.
func ParseUUID(s string) (UUID, error) {
	u, err := parseUUIDText(s)
	if err != nil {
		return Nil, err
	}
	if err := u.validate(); err != nil {
		return Nil, err
	}
	return u, nil
}

func parseUUIDText(s string) (UUID, error) {
	var u UUID

	s = strings.TrimPrefix(s, "urn:uuid:")
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}

	switch len(s) {
	case 36:
		if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
			return u, fmt.Errorf("%w: misplaced hyphen", ErrInvalidFormat)
		}
		segments := [...]struct {
			dst []byte
			src string
		}{
			{u[0:4], s[0:8]},
			{u[4:6], s[9:13]},
			{u[6:8], s[14:18]},
			{u[8:10], s[19:23]},
			{u[10:16], s[24:36]},
		}
		for _, seg := range segments {
			if _, err := hex.Decode(seg.dst, []byte(seg.src)); err != nil {
				return Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
			}
		}
		return u, nil
	case 32:
		if _, err := hex.Decode(u[:], []byte(s)); err != nil {
			return Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return u, nil
	default:
		return u, fmt.Errorf("%w: unexpected length %d", ErrInvalidFormat, len(s))
	}
}

// MustParseUUID is like ParseUUID but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("oid: ParseUUID(%q): %v", s, err))
	}
	return u
}

// FromBytes creates a UUID from a 16 byte slice, rejecting anything that is
// not a version 7 UUID.
func FromBytes(b []byte) (UUID, error) {
	var u UUID
	if len(b) != 16 {
		return Nil, ErrInvalidLength
	}
	copy(u[:], b)
	if err := u.validate(); err != nil {
		return Nil, err
	}
	return u, nil
}

// Bytes returns a copy of the UUID as a byte slice
func (u UUID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, u[:])
	return b
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := ParseUUID(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	id, err := FromBytes(data)
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// Scan implements the sql.Scanner interface. Raw 16 byte columns and textual
// columns are both accepted.
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*u = Nil
		return nil
	case string:
		return u.UnmarshalText([]byte(src))
	case []byte:
		if len(src) == 16 {
			return u.UnmarshalBinary(src)
		}
		return u.UnmarshalText(src)
	default:
		return fmt.Errorf("oid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface
func (u UUID) Value() (driver.Value, error) {
	if u.IsNil() {
		return nil, nil
	}
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
// For UUIDv7 this is creation time order.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
