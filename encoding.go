package oid

import (
	"encoding/base32"
	"strings"
)

const (
	// base32Alphabet is the RFC 4648 alphabet in lowercase.
	base32Alphabet = "abcdefghijklmnopqrstuvwxyz234567"

	// EncodedLen is the length of a base32 encoded UUID: 128 bits at 5 bits
	// per character. The last character only carries 3 significant bits.
	EncodedLen = 26
)

var base32Encoding = base32.NewEncoding(base32Alphabet).WithPadding(base32.NoPadding)

// EncodeToBase32 encodes the UUID as 26 lowercase, unpadded base32 characters.
func (u UUID) EncodeToBase32() string {
	var buf [EncodedLen]byte
	base32Encoding.Encode(buf[:], u[:])
	return string(buf[:])
}

// DecodeFromBase32 decodes the value portion of an OID back into a UUID. The
// input must be exactly 26 characters of the lowercase alphabet with the two
// unused trailing bits set to zero, and must decode to a version 7 UUID.
func DecodeFromBase32(s string) (UUID, error) {
	b, err := decodeBase32(s)
	if err != nil {
		return Nil, err
	}
	return FromBytes(b[:])
}

func decodeBase32(s string) ([16]byte, error) {
	var out [16]byte
	if len(s) != EncodedLen {
		return out, &Base32Error{Pos: -1, Reason: "invalid length"}
	}
	// encoding/base32 silently skips '\r' and '\n' and accepts nothing but the
	// alphabet otherwise, so check every byte up front for a precise position.
	for i := 0; i < len(s); i++ {
		if !isBase32Char(s[i]) {
			return out, &Base32Error{Pos: i, Reason: "invalid symbol"}
		}
	}
	// The final character carries 3 significant bits; its low 2 bits must be
	// zero or the same UUID would have 4 spellings.
	if strings.IndexByte(base32Alphabet, s[EncodedLen-1])&0x03 != 0 {
		return out, &Base32Error{Pos: EncodedLen - 1, Reason: "non-zero trailing bits"}
	}
	n, err := base32Encoding.Decode(out[:], []byte(s))
	if err != nil {
		return out, &Base32Error{Pos: -1, Reason: err.Error()}
	}
	if n != len(out) {
		return out, &Base32Error{Pos: -1, Reason: "invalid length"}
	}
	return out, nil
}

func isBase32Char(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')
}
