// Package oid implements prefixed object identifiers (OIDs): a short, human
// readable prefix and a time-ordered UUIDv7, separated by a '-':
//
//	tst-agc6amh7z527vijkv2cutplwaa
//
// The prefix works like a subject line. While debugging it is obvious when a
// formation ID ("frm-...") ended up where a flight ID ("flt-...") was
// expected, which is not the case with bare UUIDs. The value is the UUID
// encoded as 26 lowercase, unpadded base32 characters (RFC 4648 alphabet),
// which is shorter than the hex form. Use OID.Compare, not string comparison,
// to order OIDs by creation time.
//
// Basic Usage:
//
//	// Generate a new OID
//	id, err := oid.New("exm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id)
//
//	// Parse an OID from a string
//	id, err = oid.Parse("tst-agc6amh7z527vijkv2cutplwaa")
//
//	// Build one from an existing UUIDv7
//	id, err = oid.WithUUID("exm", oid.MustParseUUID("0185e030-ffcf-75fa-a12a-ae8549bd7600"))
//
//	fmt.Println(id.Prefix(), id.Value(), id.UUID(), id.Time())
//
// Typed OIDs:
//
// TypedOID binds the prefix to a kind type so that IDs of different kinds are
// different Go types, and parsing an ID of the wrong kind fails:
//
//	type Tst struct{} // prefix "tst", from the type name
//
//	id := oid.NewTyped[Tst]()
//	_, err := oid.ParseTyped[Tst]("frm-5wacbutjwbdexonddvdb2lnyxu") // ErrPrefixMismatch
//
// Format:
//
//   - prefix: 2-4 characters of 2-7,a-z; input is lowercased
//   - separator: a single '-', the first one in the string
//   - value: exactly 26 base32 characters decoding to a version 7 UUID; the
//     last character carries 3 bits and its 2 unused bits are always zero
//
// UUIDs of any other version are rejected with ErrUnsupportedVersion.
//
// Thread Safety:
//
// OIDs, Prefixes and UUIDs are immutable values. The default generator can be
// used concurrently from multiple goroutines. The package never logs.
package oid
