package oid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// Generator is a thread-safe UUIDv7 generator that keeps values monotonic
// within the same millisecond by using a randomly seeded 12-bit counter in
// the rand_a field.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp uint64
	clockSeq      uint16 // 12-bit counter for sub-millisecond ordering
	randReader    io.Reader
	now           func() time.Time
}

// NewGenerator creates a new UUIDv7 generator using the system clock and
// crypto/rand as the random source
func NewGenerator() *Generator {
	return NewGeneratorWithClock(time.Now, rand.Reader)
}

// NewGeneratorWithReader creates a new UUIDv7 generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return NewGeneratorWithClock(time.Now, r)
}

// NewGeneratorWithClock creates a new UUIDv7 generator reading the time from
// now and random bits from r.
func NewGeneratorWithClock(now func() time.Time, r io.Reader) *Generator {
	return &Generator{
		randReader: r,
		now:        now,
	}
}

// New generates a new UUIDv7 with the generator's current time.
func (g *Generator) New() (UUID, error) {
	return g.NewWithTime(g.now())
}

// NewWithTime generates a new UUIDv7 with the specified timestamp.
// UUIDs generated with the same or an earlier millisecond than the previous
// call are still strictly greater than the previous UUID.
func (g *Generator) NewWithTime(t time.Time) (UUID, error) {
	var uuid UUID

	// 48-bit Unix timestamp in milliseconds
	timestamp := uint64(t.UnixMilli()) & 0xFFFFFFFFFFFF

	g.mu.Lock()
	defer g.mu.Unlock()

	if timestamp <= g.lastTimestamp {
		timestamp = g.lastTimestamp
		g.clockSeq++
		if g.clockSeq > 0xFFF {
			g.clockSeq = 0
			timestamp = g.lastTimestamp + 1
			g.lastTimestamp = timestamp
		}
	} else {
		// New millisecond: reseed the counter from the random source.
		var randBytes [2]byte
		if _, err := io.ReadFull(g.randReader, randBytes[:]); err != nil {
			return Nil, err
		}
		g.clockSeq = binary.BigEndian.Uint16(randBytes[:]) & 0x7FF // leave headroom below 0xFFF
		g.lastTimestamp = timestamp
	}

	// unix_ts_ms: bytes 0-5
	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)

	// ver (4 bits) + rand_a (12 bits): bytes 6-7
	uuid[6] = byte(0x70 | (g.clockSeq >> 8))
	uuid[7] = byte(g.clockSeq)

	// var (2 bits) + rand_b (62 bits): bytes 8-15
	if _, err := io.ReadFull(g.randReader, uuid[8:]); err != nil {
		return Nil, err
	}
	uuid[8] = (uuid[8] & 0x3F) | 0x80

	return uuid, nil
}

// NewOID generates a new OID with the given prefix using this generator.
func (g *Generator) NewOID(prefix string) (OID, error) {
	p, err := ParsePrefix(prefix)
	if err != nil {
		return OID{}, err
	}
	u, err := g.New()
	if err != nil {
		return OID{}, err
	}
	return OID{prefix: p, uuid: u}, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = oid.Must(generator.New())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by NewUUID, New and NewTyped
var defaultGenerator = NewGenerator()

// NewUUID generates a new UUIDv7 using the default generator.
func NewUUID() (UUID, error) {
	return defaultGenerator.New()
}

// Timestamp extracts the Unix timestamp (in milliseconds) from a UUIDv7
func (u UUID) Timestamp() int64 {
	if u.Version() != VersionTimeSorted {
		return 0
	}
	timestamp := uint64(u[0])<<40 |
		uint64(u[1])<<32 |
		uint64(u[2])<<24 |
		uint64(u[3])<<16 |
		uint64(u[4])<<8 |
		uint64(u[5])
	return int64(timestamp)
}

// Time returns the timestamp as a time.Time for UUIDv7
func (u UUID) Time() time.Time {
	if u.Version() != VersionTimeSorted {
		return time.Time{}
	}
	return time.UnixMilli(u.Timestamp())
}
