package oid

import "fmt"

const (
	// MinPrefixLen is the shortest allowed prefix
	MinPrefixLen = 2
	// MaxPrefixLen is the longest allowed prefix
	MaxPrefixLen = 4
)

// Prefix is the human readable "subject line" of an OID, such as "frm" or
// "flt". It holds 2-4 lowercase characters of the base32 alphabet (2-7, a-z).
// The zero value is an empty, invalid prefix.
type Prefix struct {
	s string
}

// ParsePrefix validates s and returns it as a Prefix. Input is converted to
// ASCII lowercase first, so "FRM" and "frm" yield the same Prefix. Any
// character outside 2-7,a-z fails with ErrInvalidPrefixChar; a valid
// alphabet but wrong length fails with ErrPrefixByteLength.
func ParsePrefix(s string) (Prefix, error) {
	var buf [MaxPrefixLen]byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if !isBase32Char(c) {
			return Prefix{}, fmt.Errorf("%w: %q", ErrInvalidPrefixChar, s)
		}
		if i < MaxPrefixLen {
			buf[i] = c
		}
	}
	if len(s) < MinPrefixLen || len(s) > MaxPrefixLen {
		return Prefix{}, fmt.Errorf("%w: %q has %d bytes", ErrPrefixByteLength, s, len(s))
	}
	return Prefix{s: string(buf[:len(s)])}, nil
}

// MustParsePrefix is like ParsePrefix but panics on error.
func MustParsePrefix(s string) Prefix {
	p, err := ParsePrefix(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the lowercase prefix
func (p Prefix) String() string {
	return p.s
}

// IsZero reports whether p is the zero Prefix
func (p Prefix) IsZero() bool {
	return p.s == ""
}
