package oid

import (
	"errors"
	"fmt"
)

var (
	// ErrPrefixByteLength indicates that a prefix is empty, shorter than
	// MinPrefixLen or longer than MaxPrefixLen
	ErrPrefixByteLength = errors.New("oid: wrong number of bytes for prefix")

	// ErrInvalidPrefixChar indicates that a prefix contains a character outside 2-7,a-z
	ErrInvalidPrefixChar = errors.New("oid: prefix characters may only be ASCII values of 2-7,a-z")

	// ErrPrefixMismatch indicates that an OID carries a different prefix than the
	// kind it was parsed into
	ErrPrefixMismatch = errors.New("oid: prefix does not match the expected kind")

	// ErrUnsupportedVersion indicates that a UUID is not a version 7 UUID
	ErrUnsupportedVersion = errors.New("oid: only UUIDv7 is supported")

	// ErrMissingPrefix indicates that an OID string has nothing before the separator
	ErrMissingPrefix = errors.New("oid: missing prefix")

	// ErrMissingSeparator indicates that an OID string has no '-' separator
	ErrMissingSeparator = errors.New("oid: missing separator")

	// ErrMissingValue indicates that an OID string has nothing after the separator
	ErrMissingValue = errors.New("oid: missing value")

	// ErrBase32Decode indicates that the value portion of an OID is not valid base32
	ErrBase32Decode = errors.New("oid: base32 decode error")

	// ErrInvalidFormat indicates that the UUID string format is invalid
	ErrInvalidFormat = errors.New("oid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("oid: invalid UUID length (expected 16 bytes)")
)

// Base32Error describes where and why a base32 value failed to decode.
// It matches ErrBase32Decode with errors.Is.
type Base32Error struct {
	Pos    int
	Reason string
}

func (e *Base32Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%v: %s", ErrBase32Decode, e.Reason)
	}
	return fmt.Sprintf("%v: %s at position %d", ErrBase32Decode, e.Reason, e.Pos)
}

func (e *Base32Error) Is(target error) bool {
	return target == ErrBase32Decode
}

// PrefixMismatchError is returned when a typed OID is parsed from a string
// whose prefix belongs to another kind. It matches both ErrPrefixMismatch and
// ErrInvalidPrefixChar with errors.Is.
type PrefixMismatchError struct {
	Expected string
	Actual   string
}

func (e *PrefixMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %q, got %q", ErrPrefixMismatch, e.Expected, e.Actual)
}

func (e *PrefixMismatchError) Is(target error) bool {
	return target == ErrPrefixMismatch || target == ErrInvalidPrefixChar
}
