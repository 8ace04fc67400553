package oid

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Prefixer can be implemented by a kind type to choose its OID prefix. Kinds
// that do not implement it use their lowercased type name.
type Prefixer interface {
	OIDPrefix() string
}

// TypedOID is an OID whose prefix is fixed by the kind type K, usually an
// empty struct:
//
//	type Flight struct{}
//	func (Flight) OIDPrefix() string { return "flt" }
//
//	id := oid.NewTyped[Flight]()            // "flt-..."
//	_, err := oid.ParseTyped[Flight]("frm-...") // ErrPrefixMismatch
//
// TypedOID[A] and TypedOID[B] are different types, so identifiers of different
// kinds cannot be compared or passed for one another. The zero value is an
// empty OID.
//
// K must either implement Prefixer or be a named, non-generic type whose
// lowercased name is a valid prefix. Pointer, unnamed and instantiated
// generic types such as *Flight or Kind[int] have no usable name and panic
// unless they implement Prefixer (a pointer kind may implement it through
// its element type).
type TypedOID[K any] struct {
	oid OID
}

var kindPrefixes sync.Map // reflect.Type -> Prefix

// kindPrefix resolves and caches the prefix of K. A malformed prefix is a
// programming error and panics.
func kindPrefix[K any]() Prefix {
	t := reflect.TypeFor[K]()
	if p, ok := kindPrefixes.Load(t); ok {
		return p.(Prefix)
	}

	raw := strings.ToLower(t.Name())
	var k K
	if t.Kind() == reflect.Pointer {
		// A nil pointer cannot call value-receiver methods.
		k = reflect.New(t.Elem()).Interface().(K)
	}
	if pf, ok := any(k).(Prefixer); ok {
		raw = pf.OIDPrefix()
	}
	p, err := ParsePrefix(raw)
	if err != nil {
		panic(fmt.Sprintf("oid: kind %v has an invalid prefix: %v", t, err))
	}
	actual, _ := kindPrefixes.LoadOrStore(t, p)
	return actual.(Prefix)
}

// KindPrefix returns the canonical prefix of the kind K.
func KindPrefix[K any]() string {
	return kindPrefix[K]().String()
}

// NewTyped creates a TypedOID of kind K with a freshly generated UUIDv7. It
// panics if K's prefix is invalid or the random source fails.
func NewTyped[K any]() TypedOID[K] {
	p := kindPrefix[K]()
	return TypedOID[K]{oid: OID{prefix: p, uuid: Must(defaultGenerator.New())}}
}

// TypedWithUUID creates a TypedOID of kind K from an existing UUIDv7.
func TypedWithUUID[K any](u UUID) (TypedOID[K], error) {
	if err := u.validate(); err != nil {
		return TypedOID[K]{}, err
	}
	return TypedOID[K]{oid: OID{prefix: kindPrefix[K](), uuid: u}}, nil
}

// ParseTyped parses s as an OID of kind K. The prefix is checked against K
// before the value is decoded, so an ID of another kind fails with a
// *PrefixMismatchError whatever its value holds.
func ParseTyped[K any](s string) (TypedOID[K], error) {
	pfx, val, ok := strings.Cut(s, string(Separator))
	if !ok {
		return TypedOID[K]{}, ErrMissingSeparator
	}
	if pfx == "" {
		return TypedOID[K]{}, ErrMissingPrefix
	}
	p, err := ParsePrefix(pfx)
	if err != nil {
		return TypedOID[K]{}, err
	}
	if want := kindPrefix[K](); p != want {
		return TypedOID[K]{}, &PrefixMismatchError{Expected: want.String(), Actual: p.String()}
	}
	if val == "" {
		return TypedOID[K]{}, ErrMissingValue
	}
	u, err := DecodeFromBase32(val)
	if err != nil {
		return TypedOID[K]{}, err
	}
	return TypedOID[K]{oid: OID{prefix: p, uuid: u}}, nil
}

// MustParseTyped is like ParseTyped but panics on error.
func MustParseTyped[K any](s string) TypedOID[K] {
	t, err := ParseTyped[K](s)
	if err != nil {
		panic(fmt.Sprintf("oid: ParseTyped(%q): %v", s, err))
	}
	return t
}

// AsTyped converts an untyped OID into a TypedOID of kind K, failing with a
// *PrefixMismatchError when the prefixes differ.
func AsTyped[K any](o OID) (TypedOID[K], error) {
	want := kindPrefix[K]()
	if o.prefix != want {
		return TypedOID[K]{}, &PrefixMismatchError{Expected: want.String(), Actual: o.Prefix()}
	}
	return TypedOID[K]{oid: o}, nil
}

// OID returns the untyped OID
func (t TypedOID[K]) OID() OID { return t.oid }

// Prefix returns the prefix of the OID, which is always KindPrefix[K]()
// unless t is zero.
func (t TypedOID[K]) Prefix() string { return t.oid.Prefix() }

// Value returns the base32 encoded UUID
func (t TypedOID[K]) Value() string { return t.oid.Value() }

// UUID returns the decoded UUID
func (t TypedOID[K]) UUID() UUID { return t.oid.UUID() }

// Time returns the creation time embedded in the UUID
func (t TypedOID[K]) Time() time.Time { return t.oid.Time() }

// IsZero reports whether t is the zero value
func (t TypedOID[K]) IsZero() bool { return t.oid.IsZero() }

// String returns the canonical form, or "" for the zero value
func (t TypedOID[K]) String() string { return t.oid.String() }

// Equal reports whether t and other hold the same UUID
func (t TypedOID[K]) Equal(other TypedOID[K]) bool { return t.oid == other.oid }

// Compare orders typed OIDs by creation time, see OID.Compare
func (t TypedOID[K]) Compare(other TypedOID[K]) int { return t.oid.Compare(other.oid) }

// MarshalText implements encoding.TextMarshaler
func (t TypedOID[K]) MarshalText() ([]byte, error) {
	return t.oid.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects OIDs of
// other kinds. Empty input yields the zero value.
func (t *TypedOID[K]) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TypedOID[K]{}
		return nil
	}
	parsed, err := ParseTyped[K](string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner and rejects OIDs of other kinds.
func (t *TypedOID[K]) Scan(src interface{}) error {
	var o OID
	if err := o.Scan(src); err != nil {
		return err
	}
	if o.IsZero() {
		*t = TypedOID[K]{}
		return nil
	}
	typed, err := AsTyped[K](o)
	if err != nil {
		return err
	}
	*t = typed
	return nil
}
