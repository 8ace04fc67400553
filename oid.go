package oid

import (
	"fmt"
	"strings"
	"time"
)

// Separator joins the prefix and the value of an OID
const Separator = '-'

// OID is an object identifier: a Prefix and a UUIDv7, written as
// "<prefix>-<base32 uuid>". OIDs are comparable values and may be used as map
// keys; two OIDs are equal exactly when their canonical strings are equal.
// The zero value is an empty OID.
type OID struct {
	prefix Prefix
	uuid   UUID
}

// New creates an OID with the given prefix and a freshly generated UUIDv7.
func New(prefix string) (OID, error) {
	return defaultGenerator.NewOID(prefix)
}

// WithUUID creates an OID from a prefix and an existing UUID, which must be a
// version 7 UUID.
func WithUUID(prefix string, u UUID) (OID, error) {
	p, err := ParsePrefix(prefix)
	if err != nil {
		return OID{}, err
	}
	if err := u.validate(); err != nil {
		return OID{}, err
	}
	return OID{prefix: p, uuid: u}, nil
}

// Parse parses an OID from its canonical string form. The string is split on
// the first '-'; anything after it, including further separators, is treated
// as the base32 value.
func Parse(s string) (OID, error) {
	pfx, val, ok := strings.Cut(s, string(Separator))
	if !ok {
		return OID{}, ErrMissingSeparator
	}
	if pfx == "" {
		return OID{}, ErrMissingPrefix
	}
	if val == "" {
		return OID{}, ErrMissingValue
	}
	p, err := ParsePrefix(pfx)
	if err != nil {
		return OID{}, err
	}
	u, err := DecodeFromBase32(val)
	if err != nil {
		return OID{}, err
	}
	return OID{prefix: p, uuid: u}, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
func MustParse(s string) OID {
	o, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("oid: Parse(%q): %v", s, err))
	}
	return o
}

// Prefix returns the prefix of the OID
func (o OID) Prefix() string {
	return o.prefix.String()
}

// Value returns the base32 encoded UUID following the separator
func (o OID) Value() string {
	if o.IsZero() {
		return ""
	}
	return o.uuid.EncodeToBase32()
}

// UUID returns the decoded UUID of the OID
func (o OID) UUID() UUID {
	return o.uuid
}

// Time returns the creation time embedded in the UUID
func (o OID) Time() time.Time {
	return o.uuid.Time()
}

// IsZero reports whether o is the zero OID
func (o OID) IsZero() bool {
	return o.prefix.IsZero() && o.uuid.IsNil()
}

// String returns the canonical form, or "" for the zero OID
func (o OID) String() string {
	if o.IsZero() {
		return ""
	}
	var buf [MaxPrefixLen + 1 + EncodedLen]byte
	n := copy(buf[:], o.prefix.s)
	buf[n] = Separator
	n++
	base32Encoding.Encode(buf[n:], o.uuid[:])
	return string(buf[:n+EncodedLen])
}

// Equal reports whether o and other have the same prefix and UUID
func (o OID) Equal(other OID) bool {
	return o == other
}

// Compare orders OIDs by prefix, then by UUID bytes, so within one prefix it
// is creation order. This is not always the order of the canonical strings:
// the base32 digits 2-7 sort before the letters in ASCII but after them in
// value.
func (o OID) Compare(other OID) int {
	if c := strings.Compare(o.prefix.s, other.prefix.s); c != 0 {
		return c
	}
	return o.uuid.Compare(other.uuid)
}

// MarshalText implements encoding.TextMarshaler. JSON encodes an OID as a
// plain string.
func (o OID) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero OID.
func (o *OID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*o = OID{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Scan implements sql.Scanner. NULL and empty strings scan to the zero OID.
// OID does not implement driver.Valuer because Value returns the base32
// text; pass String() (or nil for the zero OID) as the query argument.
func (o *OID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*o = OID{}
		return nil
	case string:
		return o.UnmarshalText([]byte(src))
	case []byte:
		return o.UnmarshalText(src)
	default:
		return fmt.Errorf("oid: cannot scan type %T into OID", src)
	}
}
